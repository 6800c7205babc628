package web

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/parsgolf/server/internal/domain"
	"github.com/parsgolf/server/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	name     string
	email    string
	password string
}

func parseSignUpRequest(ctx *fiber.Ctx) (signupRequest, error) {
	var err error
	name := ctx.FormValue("username", "")
	err = errors.Join(err, validateUserName(name))
	email := ctx.FormValue("email", "")
	err = errors.Join(err, validateEmail(email))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	passwordRepeat := ctx.FormValue("password-repeat", "")
	if passwordRepeat != password {
		err = errors.Join(err, errors.New("password confirmation does not match"))
	}
	if err != nil {
		return signupRequest{}, err
	}
	return signupRequest{
		name:     name,
		email:    email,
		password: password,
	}, nil
}

type signInRequest struct {
	email    string
	password string
}

func parseSignInRequest(ctx *fiber.Ctx) (req signInRequest, err error) {
	email := ctx.FormValue("email", "")
	err = errors.Join(err, validateEmail(email))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	if err != nil {
		return signInRequest{}, err
	}
	return signInRequest{
		email:    email,
		password: password,
	}, nil
}

func parseResetRequest(ctx *fiber.Ctx) (string, error) {
	var err error
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	passwordRepeat := ctx.FormValue("password-repeat", "")
	if passwordRepeat != password {
		err = errors.Join(err, errors.New("password confirmation does not match"))
	}
	if err != nil {
		return "", err
	}
	return password, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

var nameRegexp = regexp.MustCompile(`^[A-Za-z]\w+$`)

func validateUserName(name string) error {
	var err error
	if name == "" {
		err = errors.Join(err, errors.New("username must not be empty"))
	}
	if !nameRegexp.MatchString(name) {
		err = errors.Join(err, errors.New("username must start with a letter and contain only letters, digits and underscores"))
	}
	return err
}

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return errors.New("a valid email address is required")
	}
	return nil
}

func parseClubForm(ctx *fiber.Ctx) (domain.Club, error) {
	var err error
	club := domain.Club{
		Name:         strings.TrimSpace(ctx.FormValue("name")),
		Brand:        strings.TrimSpace(ctx.FormValue("brand")),
		ClubType:     strings.TrimSpace(ctx.FormValue("club_type")),
		Description:  strings.TrimSpace(ctx.FormValue("description")),
		ImageURL:     strings.TrimSpace(ctx.FormValue("image_url")),
		PurchaseLink: strings.TrimSpace(ctx.FormValue("purchase_link")),
	}
	club.Price, err = joinFloat(err, ctx.FormValue("price"), "price")
	club.ReleaseYear, err = joinInt(err, ctx.FormValue("release_year"), "release year")
	if err != nil {
		return domain.Club{}, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return club, nil
}

func parsePlayerForm(ctx *fiber.Ctx) (domain.Player, error) {
	var err error
	player := domain.Player{
		Name:         strings.TrimSpace(ctx.FormValue("name")),
		Country:      strings.TrimSpace(ctx.FormValue("country")),
		Bio:          strings.TrimSpace(ctx.FormValue("bio")),
		ProfileImage: strings.TrimSpace(ctx.FormValue("profile_image")),
	}
	player.WorldRanking, err = joinInt(err, ctx.FormValue("world_ranking"), "world ranking")
	player.ProSince, err = joinInt(err, ctx.FormValue("pro_since"), "pro since")
	player.MajorWins, err = joinInt(err, ctx.FormValue("major_wins"), "major wins")
	player.TourWins, err = joinInt(err, ctx.FormValue("tour_wins"), "tour wins")
	if err != nil {
		return domain.Player{}, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return player, nil
}

func parseCourseForm(ctx *fiber.Ctx) (domain.Course, error) {
	var err error
	course := domain.Course{
		Name:           strings.TrimSpace(ctx.FormValue("name")),
		Location:       strings.TrimSpace(ctx.FormValue("location")),
		Description:    strings.TrimSpace(ctx.FormValue("description")),
		ImageURL:       strings.TrimSpace(ctx.FormValue("image_url")),
		Website:        strings.TrimSpace(ctx.FormValue("website")),
		Designer:       strings.TrimSpace(ctx.FormValue("designer")),
		IsPublic:       ctx.FormValue("is_public") == "on",
		HasHostedMajor: ctx.FormValue("has_hosted_major") == "on",
	}
	course.Par, err = joinInt(err, ctx.FormValue("par"), "par")
	course.LengthYards, err = joinInt(err, ctx.FormValue("length_yards"), "length")
	course.DifficultyRating, err = joinFloat(err, ctx.FormValue("difficulty_rating"), "difficulty rating")
	course.YearBuilt, err = joinInt(err, ctx.FormValue("year_built"), "year built")
	if err != nil {
		return domain.Course{}, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return course, nil
}

func joinInt(err error, raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, err
	}
	v, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return 0, errors.Join(err, errors.New(field+" must be a number"))
	}
	return v, err
}

func joinFloat(err error, raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, err
	}
	v, convErr := strconv.ParseFloat(raw, 64)
	if convErr != nil {
		return 0, errors.Join(err, errors.New(field+" must be a number"))
	}
	return v, err
}

// parseListQuery reads paging, sorting and filter params. Unknown values are
// left for the service layer to normalize.
func parseListQuery(ctx *fiber.Ctx, kind domain.Kind) domain.ListQuery {
	q := domain.ListQuery{
		Kind:    kind,
		Sort:    domain.SortKey(ctx.Query("sort")),
		Page:    ctx.QueryInt("page", 1),
		PerPage: domain.DefaultPerPage,
	}
	q.Filters.Brand = strings.TrimSpace(ctx.Query("brand"))
	q.Filters.ClubType = strings.TrimSpace(ctx.Query("club_type"))
	q.Filters.Country = strings.TrimSpace(ctx.Query("country"))
	if v := ctx.Query("is_public"); v != "" {
		b := v == "1" || v == "true"
		q.Filters.IsPublic = &b
	}
	if v := ctx.Query("has_hosted_major"); v != "" {
		b := v == "1" || v == "true"
		q.Filters.HasHostedMajor = &b
	}
	return q
}
