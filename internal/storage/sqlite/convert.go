package sqlite

import (
	"github.com/parsgolf/server/gen/model"
	"github.com/parsgolf/server/internal/domain"

	"github.com/google/uuid"
)

func convertClubToDomain(club model.Clubs) (domain.Club, error) {
	id, err := uuid.Parse(club.ID)
	if err != nil {
		return domain.Club{}, err
	}
	submitter, err := parseOptionalUUID(club.SubmitterID)
	if err != nil {
		return domain.Club{}, err
	}
	return domain.Club{
		ID:           id,
		Name:         club.Name,
		Brand:        club.Brand,
		ClubType:     club.ClubType,
		Description:  club.Description,
		ImageURL:     club.ImageURL,
		PurchaseLink: club.PurchaseLink,
		Price:        fromPtrFloat(club.Price),
		ReleaseYear:  fromPtrInt(club.ReleaseYear),
		Approved:     club.Approved,
		SubmitterID:  submitter,
		CreatedAt:    club.CreatedAt,
		UpdatedAt:    club.UpdatedAt,
	}, nil
}

func convertClubFromDomain(club domain.Club) model.Clubs {
	return model.Clubs{
		ID:           club.ID.String(),
		Name:         club.Name,
		Brand:        club.Brand,
		ClubType:     club.ClubType,
		Description:  club.Description,
		ImageURL:     club.ImageURL,
		PurchaseLink: club.PurchaseLink,
		Price:        toPtrFloat(club.Price),
		ReleaseYear:  toPtrInt(club.ReleaseYear),
		Approved:     club.Approved,
		SubmitterID:  formatOptionalUUID(club.SubmitterID),
		CreatedAt:    club.CreatedAt,
		UpdatedAt:    club.UpdatedAt,
	}
}

func convertPlayerToDomain(player model.Players) (domain.Player, error) {
	id, err := uuid.Parse(player.ID)
	if err != nil {
		return domain.Player{}, err
	}
	submitter, err := parseOptionalUUID(player.SubmitterID)
	if err != nil {
		return domain.Player{}, err
	}
	userID, err := parseOptionalUUID(player.UserID)
	if err != nil {
		return domain.Player{}, err
	}
	return domain.Player{
		ID:           id,
		Name:         player.Name,
		ProfileImage: player.ProfileImage,
		Bio:          player.Bio,
		Country:      player.Country,
		WorldRanking: fromPtrInt(player.WorldRanking),
		ProSince:     fromPtrInt(player.ProSince),
		MajorWins:    int(player.MajorWins),
		TourWins:     int(player.TourWins),
		Verified:     player.Verified,
		UserID:       userID,
		Approved:     player.Approved,
		SubmitterID:  submitter,
		CreatedAt:    player.CreatedAt,
		UpdatedAt:    player.UpdatedAt,
	}, nil
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	return model.Players{
		ID:           player.ID.String(),
		Name:         player.Name,
		ProfileImage: player.ProfileImage,
		Bio:          player.Bio,
		Country:      player.Country,
		WorldRanking: toPtrInt(player.WorldRanking),
		ProSince:     toPtrInt(player.ProSince),
		MajorWins:    int32(player.MajorWins),
		TourWins:     int32(player.TourWins),
		Verified:     player.Verified,
		UserID:       formatOptionalUUID(player.UserID),
		Approved:     player.Approved,
		SubmitterID:  formatOptionalUUID(player.SubmitterID),
		CreatedAt:    player.CreatedAt,
		UpdatedAt:    player.UpdatedAt,
	}
}

func convertCourseToDomain(course model.Courses) (domain.Course, error) {
	id, err := uuid.Parse(course.ID)
	if err != nil {
		return domain.Course{}, err
	}
	submitter, err := parseOptionalUUID(course.SubmitterID)
	if err != nil {
		return domain.Course{}, err
	}
	return domain.Course{
		ID:               id,
		Name:             course.Name,
		Location:         course.Location,
		Description:      course.Description,
		ImageURL:         course.ImageURL,
		Website:          course.Website,
		Par:              fromPtrInt(course.Par),
		LengthYards:      fromPtrInt(course.LengthYards),
		DifficultyRating: fromPtrFloat(course.DifficultyRating),
		YearBuilt:        fromPtrInt(course.YearBuilt),
		Designer:         course.Designer,
		IsPublic:         course.IsPublic,
		HasHostedMajor:   course.HasHostedMajor,
		Approved:         course.Approved,
		SubmitterID:      submitter,
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}, nil
}

func convertCourseFromDomain(course domain.Course) model.Courses {
	return model.Courses{
		ID:               course.ID.String(),
		Name:             course.Name,
		Location:         course.Location,
		Description:      course.Description,
		ImageURL:         course.ImageURL,
		Website:          course.Website,
		Par:              toPtrInt(course.Par),
		LengthYards:      toPtrInt(course.LengthYards),
		DifficultyRating: toPtrFloat(course.DifficultyRating),
		YearBuilt:        toPtrInt(course.YearBuilt),
		Designer:         course.Designer,
		IsPublic:         course.IsPublic,
		HasHostedMajor:   course.HasHostedMajor,
		Approved:         course.Approved,
		SubmitterID:      formatOptionalUUID(course.SubmitterID),
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}
}

func convertVoteFromDomain(vote domain.Vote) model.Votes {
	return model.Votes{
		ID:          vote.ID.String(),
		UserID:      vote.UserID.String(),
		ContentID:   vote.ContentID.String(),
		ContentKind: string(vote.Kind),
		CreatedAt:   vote.CreatedAt,
	}
}

func parseOptionalUUID(s *string) (uuid.UUID, error) {
	if s == nil || *s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(*s)
}

func formatOptionalUUID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func fromPtrInt(v *int32) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

func toPtrInt(v int) *int32 {
	i := int32(v)
	return &i
}

func fromPtrFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func toPtrFloat(v float64) *float64 {
	return &v
}
