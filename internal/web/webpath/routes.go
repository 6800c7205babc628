package webpath

import "github.com/parsgolf/server/internal/domain"

const (
	Home           = "/"
	Signin         = "/signin"
	Signup         = "/signup"
	Signout        = "/signout"
	ForgotPassword = "/forgot-password"
	ResetPassword  = "/reset-password/:token"
	Authorize      = "/authorize/:provider"
	Callback       = "/callback/:provider"
	Profile        = "/profile"
	PublicProfile  = Profile + "/:username"
	Dashboard      = "/dashboard"
	AdminUsers     = "/admin/users"
	AdminUserRole  = AdminUsers + "/:id/role"

	Clubs       = "/clubs"
	NewClub     = Clubs + "/new"
	ImportClubs = Clubs + "/import"
	Club        = Clubs + "/:id"
	EditClub    = Club + "/edit"
	VoteClub    = Club + "/vote"
	ApproveClub = Club + "/approve"

	Players       = "/players"
	NewPlayer     = Players + "/new"
	ImportPlayers = Players + "/import"
	Player        = Players + "/:id"
	EditPlayer    = Player + "/edit"
	VotePlayer    = Player + "/vote"
	ApprovePlayer = Player + "/approve"
	VerifyPlayer  = Player + "/verify"

	Courses       = "/courses"
	NewCourse     = Courses + "/new"
	ImportCourses = Courses + "/import"
	Course        = Courses + "/:id"
	EditCourse    = Course + "/edit"
	VoteCourse    = Course + "/vote"
	ApproveCourse = Course + "/approve"
)

// Base returns the list path for a content kind.
func Base(kind domain.Kind) string {
	switch kind {
	case domain.KindPlayer:
		return Players
	case domain.KindCourse:
		return Courses
	default:
		return Clubs
	}
}

// Path exposes route constants to the templates.
func Path() map[string]string {
	return map[string]string{
		"Home":           Home,
		"SignIn":         Signin,
		"SignUp":         Signup,
		"SignOut":        Signout,
		"ForgotPassword": ForgotPassword,
		"Profile":        Profile,
		"Dashboard":      Dashboard,
		"AdminUsers":     AdminUsers,
		"Clubs":          Clubs,
		"NewClub":        NewClub,
		"ImportClubs":    ImportClubs,
		"Players":        Players,
		"NewPlayer":      NewPlayer,
		"ImportPlayers":  ImportPlayers,
		"Courses":        Courses,
		"NewCourse":      NewCourse,
		"ImportCourses":  ImportCourses,
	}
}
