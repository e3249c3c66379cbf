package dataset

import "math"

// User is one row of the raw user export.
type User struct {
	Login       string
	Name        string
	Company     string
	Location    string
	Bio         string
	Followers   int
	PublicRepos int
	PublicGists int
}

// Repo is one row of the raw repository export.
type Repo struct {
	OwnerLogin  string
	RepoName    string
	Description string
	Language    string
	Stars       int
}

// Gold is one row of the gold-standard relevance table.
type Gold struct {
	Login     string
	Relevance float64
}

// Profile is an enriched developer profile produced by the preprocess
// stage. AgentScore is the only field mutated after creation; it is written
// back by the serving layer after AI enrichment and is NaN until then.
type Profile struct {
	Login             string
	Name              string
	Company           string
	Location          string
	Bio               string
	Followers         int
	PublicRepos       int
	PublicGists       int
	ReposDescriptions string
	LanguagesList     string
	TotalStars        int
	NbReposFetched    int
	ProfileText       string
	AgentScore        float64
}

// HasAgentScore reports whether an enrichment score has been written back.
func (p *Profile) HasAgentScore() bool {
	return !math.IsNaN(p.AgentScore)
}
