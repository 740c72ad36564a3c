package github

import (
	"github.com/m-zajac/ghcontributors/internal/app"
)

type contributorsResponse []contributorsResponseItem

type contributorsResponseItem struct {
	Login         string `json:"login"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
}

func (s contributorsResponse) ToContributors() []app.Contributor {
	cs := make([]app.Contributor, 0, len(s))
	for _, el := range s {
		cs = append(cs, app.Contributor{
			Login:         el.Login,
			HTMLURL:       el.HTMLURL,
			Contributions: el.Contributions,
		})
	}

	return cs
}
