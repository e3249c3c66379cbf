package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var profileHeader = []string{
	"login", "name", "company", "location", "bio",
	"followers", "public_repos", "public_gists",
	"repos_descriptions", "languages_list", "total_stars", "nb_repos_fetched",
	"profile_text", "agent_score",
}

// WriteProfiles writes the processed profile table, creating parent
// directories as needed. Unset agent scores serialize as empty cells.
func WriteProfiles(path string, profiles []Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dataset: create dir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(profileHeader); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}

	for _, p := range profiles {
		score := ""
		if p.HasAgentScore() {
			score = strconv.FormatFloat(p.AgentScore, 'f', -1, 64)
		}
		record := []string{
			p.Login, p.Name, p.Company, p.Location, p.Bio,
			strconv.Itoa(p.Followers), strconv.Itoa(p.PublicRepos), strconv.Itoa(p.PublicGists),
			p.ReposDescriptions, p.LanguagesList,
			strconv.Itoa(p.TotalStars), strconv.Itoa(p.NbReposFetched),
			p.ProfileText, score,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("dataset: write profile %s: %w", p.Login, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("dataset: flush %s: %w", path, err)
	}
	return nil
}
