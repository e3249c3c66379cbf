package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/talenthunt/talenthunt/dataset"
)

// repoAggregate collects the per-owner rollup of repository rows.
type repoAggregate struct {
	descriptions []string
	languages    map[string]struct{}
	totalStars   int
	repoCount    int
}

// Preprocess turns raw users and repositories into enriched profiles.
//
// Repositories are aggregated per owner: non-empty descriptions joined by
// " . " in row order, the sorted de-duplicated language set joined by ", ",
// stars summed, rows counted. Users are then inner-joined with the
// aggregates on login: users without repositories and aggregates without a
// user are dropped, by design. Profiles whose synthesized text is empty are
// dropped as well. The result is sorted by total stars, descending; the
// sort is stable, so equal-star profiles keep their join order.
func Preprocess(users []dataset.User, repos []dataset.Repo) []dataset.Profile {
	aggregates := map[string]*repoAggregate{}
	for _, repo := range repos {
		if repo.OwnerLogin == "" {
			continue
		}
		agg, ok := aggregates[repo.OwnerLogin]
		if !ok {
			agg = &repoAggregate{languages: map[string]struct{}{}}
			aggregates[repo.OwnerLogin] = agg
		}
		if desc := strings.TrimSpace(repo.Description); desc != "" {
			agg.descriptions = append(agg.descriptions, desc)
		}
		if lang := strings.TrimSpace(repo.Language); lang != "" {
			agg.languages[lang] = struct{}{}
		}
		agg.totalStars += repo.Stars
		agg.repoCount++
	}

	profiles := make([]dataset.Profile, 0, len(users))
	for _, user := range users {
		agg, ok := aggregates[user.Login]
		if !ok {
			continue
		}

		languages := make([]string, 0, len(agg.languages))
		for lang := range agg.languages {
			languages = append(languages, lang)
		}
		sort.Strings(languages)

		p := dataset.Profile{
			Login:             user.Login,
			Name:              user.Name,
			Company:           user.Company,
			Location:          user.Location,
			Bio:               user.Bio,
			Followers:         user.Followers,
			PublicRepos:       user.PublicRepos,
			PublicGists:       user.PublicGists,
			ReposDescriptions: strings.Join(agg.descriptions, " . "),
			LanguagesList:     strings.Join(languages, ", "),
			TotalStars:        agg.totalStars,
			NbReposFetched:    agg.repoCount,
			AgentScore:        math.NaN(),
		}
		p.ProfileText = buildProfileText(p)
		if p.ProfileText == "" {
			continue
		}

		profiles = append(profiles, p)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].TotalStars > profiles[j].TotalStars
	})

	return profiles
}

// buildProfileText concatenates the non-empty profile fields, in a fixed
// order, into the text the embedding model consumes.
func buildProfileText(p dataset.Profile) string {
	var parts []string
	add := func(s string) {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}

	add(p.Name)
	add(p.Bio)
	if p.Company != "" {
		add("Company: " + p.Company)
	}
	if p.Location != "" {
		add("Location: " + p.Location)
	}
	if p.LanguagesList != "" {
		add("Languages: " + p.LanguagesList)
	}
	if p.NbReposFetched > 0 {
		add(fmt.Sprintf("Number of repositories: %d", p.NbReposFetched))
	}
	if p.TotalStars > 0 {
		add(fmt.Sprintf("Total stars: %d", p.TotalStars))
	}
	if p.ReposDescriptions != "" {
		add("Projects: " + p.ReposDescriptions)
	}

	return strings.Join(parts, " . ")
}
