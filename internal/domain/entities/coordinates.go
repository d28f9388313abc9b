package entities

// RepositoryCoordinates identifies the subtree of a repository read by one transfer.
type RepositoryCoordinates struct {
	HostURL    string // e.g. https://dev.azure.com/MyOrg
	Project    string
	Repository string // name or ID
	Branch     string // short name, without refs/heads/
	RootPath   string // scope path, "/" for the whole repository
}

// ScopePath returns the root path in the form expected by the source, defaulting to "/".
func (c RepositoryCoordinates) ScopePath() string {
	if c.RootPath == "" {
		return "/"
	}
	return c.RootPath
}
