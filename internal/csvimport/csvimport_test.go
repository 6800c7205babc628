package csvimport

import (
	"strings"
	"testing"

	"github.com/parsgolf/server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClubs(t *testing.T) {
	t.Parallel()
	input := strings.Join([]string{
		"name,brand,club_type,price,release_year",
		"Stealth 2 Driver,TaylorMade,Driver,599.99,2023",
		"Apex Pro Irons,Callaway,Iron,,",
	}, "\n")

	items, rowErrors, err := Parse(domain.KindClub, strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, items, 2)

	club := items[0].(domain.Club)
	assert.Equal(t, "Stealth 2 Driver", club.Name)
	assert.Equal(t, "TaylorMade", club.Brand)
	assert.Equal(t, "Driver", club.ClubType)
	assert.Equal(t, 599.99, club.Price)
	assert.Equal(t, 2023, club.ReleaseYear)

	second := items[1].(domain.Club)
	assert.Zero(t, second.Price)
	assert.Zero(t, second.ReleaseYear)
}

func TestParseReordersColumns(t *testing.T) {
	t.Parallel()
	input := strings.Join([]string{
		"country,world_ranking,name",
		"USA,1,Scottie Scheffler",
	}, "\n")

	items, rowErrors, err := Parse(domain.KindPlayer, strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, items, 1)

	player := items[0].(domain.Player)
	assert.Equal(t, "Scottie Scheffler", player.Name)
	assert.Equal(t, "USA", player.Country)
	assert.Equal(t, 1, player.WorldRanking)
}

func TestParseCollectsRowErrors(t *testing.T) {
	t.Parallel()
	input := strings.Join([]string{
		"name,location,par,is_public",
		"Pebble Beach,California,72,yes",
		"Bad Row,Nowhere,not-a-number,maybe",
		"Augusta National,Georgia,72,no",
	}, "\n")

	items, rowErrors, err := Parse(domain.KindCourse, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 2, rowErrors[0].Row)
	assert.Contains(t, rowErrors[0].Err.Error(), "par")
	assert.Contains(t, rowErrors[0].Err.Error(), "is_public")

	course := items[0].(domain.Course)
	assert.True(t, course.IsPublic)
	assert.Equal(t, 72, course.Par)
}

func TestParseRejectsBadHeader(t *testing.T) {
	t.Parallel()
	_, _, err := Parse(domain.KindClub, strings.NewReader("brand,club_type\nTaylorMade,Driver"))
	require.Error(t, err)

	_, _, err = Parse(domain.KindClub, strings.NewReader(""))
	require.Error(t, err)
}
