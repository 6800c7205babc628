package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the three content variants stored on the site.
type Kind string

const (
	KindClub   Kind = "club"
	KindPlayer Kind = "player"
	KindCourse Kind = "course"
)

func (k Kind) Valid() bool {
	switch k {
	case KindClub, KindPlayer, KindCourse:
		return true
	}
	return false
}

// Item is the shared lifecycle surface of all content variants.
// SubmitterID is uuid.Nil when the submitter is unknown.
type Item interface {
	ItemID() uuid.UUID
	ItemKind() Kind
	ItemName() string
	IsApproved() bool
	Submitter() uuid.UUID
}

type Club struct {
	ID           uuid.UUID
	Name         string
	Brand        string
	ClubType     string
	Description  string
	ImageURL     string
	PurchaseLink string
	Price        float64
	ReleaseYear  int
	Approved     bool
	SubmitterID  uuid.UUID
	VoteCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c Club) ItemID() uuid.UUID    { return c.ID }
func (c Club) ItemKind() Kind       { return KindClub }
func (c Club) ItemName() string     { return c.Name }
func (c Club) IsApproved() bool     { return c.Approved }
func (c Club) Submitter() uuid.UUID { return c.SubmitterID }

type Player struct {
	ID           uuid.UUID
	Name         string
	ProfileImage string
	Bio          string
	Country      string
	WorldRanking int
	ProSince     int
	MajorWins    int
	TourWins     int
	Verified     bool
	// UserID links a verified player to a user account, uuid.Nil otherwise.
	UserID      uuid.UUID
	Approved    bool
	SubmitterID uuid.UUID
	VoteCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Player) ItemID() uuid.UUID    { return p.ID }
func (p Player) ItemKind() Kind       { return KindPlayer }
func (p Player) ItemName() string     { return p.Name }
func (p Player) IsApproved() bool     { return p.Approved }
func (p Player) Submitter() uuid.UUID { return p.SubmitterID }

type Course struct {
	ID               uuid.UUID
	Name             string
	Location         string
	Description      string
	ImageURL         string
	Website          string
	Par              int
	LengthYards      int
	DifficultyRating float64
	YearBuilt        int
	Designer         string
	IsPublic         bool
	HasHostedMajor   bool
	Approved         bool
	SubmitterID      uuid.UUID
	VoteCount        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Course) ItemID() uuid.UUID    { return c.ID }
func (c Course) ItemKind() Kind       { return KindCourse }
func (c Course) ItemName() string     { return c.Name }
func (c Course) IsApproved() bool     { return c.Approved }
func (c Course) Submitter() uuid.UUID { return c.SubmitterID }
