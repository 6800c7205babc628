// Package csvimport parses bulk-upload CSV files into content records.
// The first row is a header; columns may come in any order and unknown
// columns are ignored. Bad rows are collected, not fatal.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parsgolf/server/internal/domain"
	"github.com/parsgolf/server/internal/service"
)

// Parse reads CSV rows of the given kind. Returned row errors carry the
// 1-based data row number (the header row is not counted).
func Parse(kind domain.Kind, r io.Reader) ([]domain.Item, []service.RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty file")
		}
		return nil, nil, err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, nil, errors.New(`missing required column "name"`)
	}

	var (
		items     []domain.Item
		rowErrors []service.RowError
	)
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, service.RowError{Row: rowNum, Err: err})
			continue
		}
		row := row{columns: columns, fields: record}
		var item domain.Item
		switch kind {
		case domain.KindClub:
			item = parseClub(&row)
		case domain.KindPlayer:
			item = parsePlayer(&row)
		case domain.KindCourse:
			item = parseCourse(&row)
		default:
			return nil, nil, fmt.Errorf("unknown content kind %q", kind)
		}
		if row.err != nil {
			rowErrors = append(rowErrors, service.RowError{Row: rowNum, Err: row.err})
			continue
		}
		items = append(items, item)
	}
	return items, rowErrors, nil
}

// row accumulates field conversion errors so one bad row reports all of its
// problems at once.
type row struct {
	columns map[string]int
	fields  []string
	err     error
}

func (r *row) str(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r *row) intField(name string) int {
	raw := r.str(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %q is not a number", name, raw))
		return 0
	}
	return v
}

func (r *row) floatField(name string) float64 {
	raw := r.str(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %q is not a number", name, raw))
		return 0
	}
	return v
}

func (r *row) boolField(name string) bool {
	raw := strings.ToLower(r.str(name))
	switch raw {
	case "", "0", "false", "no":
		return false
	case "1", "true", "yes":
		return true
	}
	r.err = errors.Join(r.err, fmt.Errorf("%s: %q is not a boolean", name, raw))
	return false
}

func parseClub(r *row) domain.Club {
	return domain.Club{
		Name:         r.str("name"),
		Brand:        r.str("brand"),
		ClubType:     r.str("club_type"),
		Description:  r.str("description"),
		ImageURL:     r.str("image_url"),
		PurchaseLink: r.str("purchase_link"),
		Price:        r.floatField("price"),
		ReleaseYear:  r.intField("release_year"),
	}
}

func parsePlayer(r *row) domain.Player {
	return domain.Player{
		Name:         r.str("name"),
		Country:      r.str("country"),
		Bio:          r.str("bio"),
		ProfileImage: r.str("profile_image"),
		WorldRanking: r.intField("world_ranking"),
		ProSince:     r.intField("pro_since"),
		MajorWins:    r.intField("major_wins"),
		TourWins:     r.intField("tour_wins"),
	}
}

func parseCourse(r *row) domain.Course {
	return domain.Course{
		Name:             r.str("name"),
		Location:         r.str("location"),
		Description:      r.str("description"),
		ImageURL:         r.str("image_url"),
		Website:          r.str("website"),
		Par:              r.intField("par"),
		LengthYards:      r.intField("length_yards"),
		DifficultyRating: r.floatField("difficulty_rating"),
		YearBuilt:        r.intField("year_built"),
		Designer:         r.str("designer"),
		IsPublic:         r.boolField("is_public"),
		HasHostedMajor:   r.boolField("has_hosted_major"),
	}
}
