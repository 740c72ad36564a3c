package app

// Contributor entity
type Contributor struct {
	Login         string
	HTMLURL       string
	Contributions int
}

// Repository identifies github project by its owner (user or organization) and name.
type Repository struct {
	Owner string
	Name  string
}

// URL returns address of repository's github page.
func (r Repository) URL() string {
	return "https://github.com/" + r.Owner + "/" + r.Name
}

// String returns repository's full name in form "owner/name".
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// Truncate returns at most limit first contributors.
// Non positive limit means no limit. Order is preserved.
func Truncate(contributors []Contributor, limit int) []Contributor {
	if limit > 0 && len(contributors) > limit {
		return contributors[:limit]
	}

	return contributors
}
