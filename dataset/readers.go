package dataset

import "math"

// ReadUsers loads the raw user export. A missing file is fatal
// (ErrMissingSource).
func ReadUsers(path string) ([]User, error) {
	var users []User
	err := readTable(path, func(r row) error {
		users = append(users, User{
			Login:       r.get("login"),
			Name:        r.get("name"),
			Company:     r.get("company"),
			Location:    r.get("location"),
			Bio:         r.get("bio"),
			Followers:   r.asInt("followers"),
			PublicRepos: r.asInt("public_repos"),
			PublicGists: r.asInt("public_gists"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ReadRepos loads the raw repository export. A missing file is fatal
// (ErrMissingSource).
func ReadRepos(path string) ([]Repo, error) {
	var repos []Repo
	err := readTable(path, func(r row) error {
		repos = append(repos, Repo{
			OwnerLogin:  r.get("owner_login"),
			RepoName:    r.get("repo_name"),
			Description: r.get("description"),
			Language:    r.get("language"),
			Stars:       r.asInt("stargazers_count"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

// goldTruthColumns are the header names accepted for the human relevance
// score, newest first. The localized name matches historical exports.
var goldTruthColumns = []string{"human_relevance", "note de pertinence (humain)"}

// ReadGold loads the optional gold-standard table. The caller decides how
// to treat a missing file; rows without a numeric relevance are kept as NaN
// and dropped by the evaluation join.
func ReadGold(path string) ([]Gold, error) {
	var gold []Gold
	err := readTable(path, func(r row) error {
		relevance := math.NaN()
		for _, col := range goldTruthColumns {
			if v := r.asFloat(col); !math.IsNaN(v) {
				relevance = v
				break
			}
		}
		gold = append(gold, Gold{
			Login:     r.get("login"),
			Relevance: relevance,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gold, nil
}

// ReadProfiles loads a processed profile table written by WriteProfiles.
func ReadProfiles(path string) ([]Profile, error) {
	var profiles []Profile
	err := readTable(path, func(r row) error {
		profiles = append(profiles, Profile{
			Login:             r.get("login"),
			Name:              r.get("name"),
			Company:           r.get("company"),
			Location:          r.get("location"),
			Bio:               r.get("bio"),
			Followers:         r.asInt("followers"),
			PublicRepos:       r.asInt("public_repos"),
			PublicGists:       r.asInt("public_gists"),
			ReposDescriptions: r.get("repos_descriptions"),
			LanguagesList:     r.get("languages_list"),
			TotalStars:        r.asInt("total_stars"),
			NbReposFetched:    r.asInt("nb_repos_fetched"),
			ProfileText:       r.get("profile_text"),
			AgentScore:        r.asFloat("agent_score"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
