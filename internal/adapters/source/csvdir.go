package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/laneline/swimrecords/internal/domain/model"
)

// CSVDirName is the registry name of the CSV directory source.
const CSVDirName = "csvdir"

// CSVDir reads per-swimmer result files from a directory, one CSV per
// swimmer, as written by the collector. It is the on-disk half of the
// collector contract: the pipeline never talks to the network itself.
type CSVDir struct {
	dir string
}

// NewCSVDir creates a CSV directory source rooted at dir.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir}
}

// Name returns the human-readable source name.
func (c *CSVDir) Name() string { return "CSV directory" }

// ValidateTeamID reports whether the identifier points at a readable
// directory. For this source the team id is the swimmer-files directory.
func (c *CSVDir) ValidateTeamID(teamID string) bool {
	info, err := os.Stat(teamID)
	return err == nil && info.IsDir()
}

// TeamRoster lists the swimmers present in the directory. Seasons are
// not encoded in the files, so the filter is ignored.
func (c *CSVDir) TeamRoster(ctx context.Context, teamID string, _ []string) ([]RosterEntry, error) {
	dir := c.dir
	if teamID != "" {
		dir = teamID
	}
	files, err := listCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	out := make([]RosterEntry, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("team roster: %w", err)
		}
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		out = append(out, RosterEntry{SwimmerID: stem, SwimmerName: stemToName(stem)})
	}
	return out, nil
}

// SwimmerHistory reads one swimmer's file into a raw career. Missing
// optional columns (gender, person key) never fail the read; a file
// without the required columns does, once, with the column names.
func (c *CSVDir) SwimmerHistory(ctx context.Context, swimmerID string) (model.Career, error) {
	if err := ctx.Err(); err != nil {
		return model.Career{}, fmt.Errorf("swimmer history: %w", err)
	}

	path := filepath.Join(c.dir, swimmerID+".csv")
	f, err := os.Open(path)
	if err != nil {
		return model.Career{}, fmt.Errorf("swimmer history %s: %w", swimmerID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // sources disagree on trailing optional columns

	rows, err := r.ReadAll()
	if err != nil {
		return model.Career{}, fmt.Errorf("swimmer history %s: %w", swimmerID, err)
	}
	if len(rows) == 0 {
		return model.Career{SwimmerID: swimmerID, SwimmerName: stemToName(swimmerID)}, nil
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return model.Career{}, fmt.Errorf("swimmer history %s: %w", swimmerID, err)
	}

	career := model.Career{SwimmerID: swimmerID, SwimmerName: stemToName(swimmerID)}
	for _, row := range rows[1:] {
		swim := model.Swim{
			SwimmerID:   swimmerID,
			SwimmerName: cols.get(row, "name"),
			Event:       cols.get(row, "event"),
			Time:        cols.get(row, "time"),
			Age:         cols.get(row, "age"),
			DateRaw:     cols.get(row, "date"),
			Meet:        cols.get(row, "meet"),
			Team:        cols.get(row, "team"),
			Gender:      cols.get(row, "gender"),
		}
		if swim.SwimmerName == "" {
			swim.SwimmerName = career.SwimmerName
		}
		if id := cols.get(row, "id"); id != "" {
			swim.SwimmerID = id
		}
		career.Swims = append(career.Swims, swim)
	}
	if len(career.Swims) > 0 && career.Swims[0].SwimmerName != "" {
		career.SwimmerName = career.Swims[0].SwimmerName
	}
	return career, nil
}

// headerAliases maps canonical column keys to the header spellings seen
// across collector versions.
var headerAliases = map[string][]string{
	"name":   {"name", "swimmer_name", "swimmername", "fullname"},
	"team":   {"team", "team_name", "teamname", "club"},
	"event":  {"event", "event_name"},
	"time":   {"swimtime", "time", "swim_time"},
	"date":   {"swimdate", "date", "swim_date"},
	"age":    {"age"},
	"meet":   {"meet", "meetname", "meet_name"},
	"gender": {"gender", "sex"},
	"id":     {"personkey", "swimmer_id", "careerid"},
}

// requiredColumns must resolve for a file to be ingestible at all.
var requiredColumns = []string{"team", "event", "time"}

type columnIndex map[string]int

func (c columnIndex) get(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func mapHeader(header []string) (columnIndex, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make(columnIndex)
	for key, aliases := range headerAliases {
		for _, alias := range aliases {
			if i, ok := byName[alias]; ok {
				cols[key] = i
				break
			}
		}
	}
	var missing []string
	for _, key := range requiredColumns {
		if _, ok := cols[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return cols, nil
}

func listCSVFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list swimmer files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// stemToName turns a file stem like "jane-doe" into "Jane Doe". Files
// exported by the collector are named after the swimmer.
func stemToName(stem string) string {
	parts := strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
