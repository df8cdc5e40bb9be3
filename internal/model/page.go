package model

// View is the result of resolving a public page path. It is either a
// *DirectoryListing or a *RenderedPage.
type View interface {
	isView()
}

type DirectoryListing struct {
	Author  string
	Path    string
	Entries []string
}

// RenderedPage holds sanitized HTML, or raw bytes when Plain is set.
type RenderedPage struct {
	Author      string
	Path        string
	Title       string
	Body        string
	ContentType string
	Plain       bool
}

func (*DirectoryListing) isView() {}

func (*RenderedPage) isView() {}
