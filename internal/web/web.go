package web

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	embedded "github.com/parsgolf/server"
	authservice "github.com/parsgolf/server/auth/service"
	"github.com/parsgolf/server/auth/users"
	"github.com/parsgolf/server/internal/config"
	"github.com/parsgolf/server/internal/csvimport"
	"github.com/parsgolf/server/internal/domain"
	"github.com/parsgolf/server/internal/mail"
	"github.com/parsgolf/server/internal/oauth"
	"github.com/parsgolf/server/internal/service"
	"github.com/parsgolf/server/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"
)

type Server struct {
	auth      *authservice.Service
	content   *service.ContentService
	mailer    *mail.Mailer
	providers *oauth.Registry
	app       *fiber.App
	cfg       config.Server
}

const userKey = "user"

func New(
	cs *service.ContentService,
	cfg config.Server,
	authService *authservice.Service,
	mailer *mail.Mailer,
	providers *oauth.Registry,
) (*Server, error) {
	server := Server{
		content:   cs,
		auth:      authService,
		mailer:    mailer,
		providers: providers,
		cfg:       cfg,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("sub", func(a, b int) int { return a - b })

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: server.handleError,
	})
	app.Static("/uploads", cfg.UploadDir)
	app.Use(func(c *fiber.Ctx) error {
		tokenCookie := c.Cookies("token")
		user, err := authService.Auth(c.Context(), tokenCookie, c.Method(), c.Path())
		if err != nil {
			switch {
			case errors.Is(err, authservice.ErrForbidden):
				return fiber.ErrForbidden
			case errors.Is(err, authservice.ErrNotAuthorized):
				return c.Redirect(webpath.Signin)
			default:
				return err
			}
		}
		c.Context().SetUserValue(userKey, user)
		return c.Next()
	})

	app.Get(webpath.Signin, server.handleGetSignIn)
	app.Post(webpath.Signin, server.handlePostSignIn)
	app.Get(webpath.Signup, server.handleGetSignup)
	app.Post(webpath.Signup, server.handlePostSignup)
	app.Get(webpath.Signout, server.handleSignOut)
	app.Get(webpath.ForgotPassword, server.handleGetForgotPassword)
	app.Post(webpath.ForgotPassword, server.handlePostForgotPassword)
	app.Get(webpath.ResetPassword, server.handleGetResetPassword)
	app.Post(webpath.ResetPassword, server.handlePostResetPassword)
	app.Get(webpath.Authorize, server.handleAuthorize)
	app.Get(webpath.Callback, server.handleCallback)

	app.Get(webpath.Home, server.handleMain)
	app.Get(webpath.Profile, server.handleGetProfile)
	app.Post(webpath.Profile, server.handlePostProfile)
	app.Get(webpath.PublicProfile, server.handlePublicProfile)
	app.Get(webpath.Dashboard, server.handleDashboard)
	app.Get(webpath.AdminUsers, server.handleAdminUsers)
	app.Post(webpath.AdminUserRole, server.handleSetUserRole)
	app.Post(webpath.VerifyPlayer, server.handleVerifyPlayer)

	for _, kind := range []domain.Kind{domain.KindClub, domain.KindPlayer, domain.KindCourse} {
		kind := kind
		base := webpath.Base(kind)
		app.Get(base, server.handleList(kind))
		app.Get(base+"/new", server.handleNewGet(kind))
		app.Post(base+"/new", server.handleNewPost(kind))
		app.Get(base+"/import", server.handleImportGet(kind))
		app.Post(base+"/import", server.handleImportPost(kind))
		app.Get(base+"/:id", server.handleShow(kind))
		app.Get(base+"/:id/edit", server.handleEditGet(kind))
		app.Post(base+"/:id/edit", server.handleEditPost(kind))
		app.Post(base+"/:id/vote", server.handleVote(kind))
		app.Post(base+"/:id/approve", server.handleApprove(kind))
	}

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, authservice.ErrUserNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, authservice.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, service.ErrValidation):
		code = fiber.StatusBadRequest
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}
	}
	ctx.Status(code)
	return ctx.Render("error", newData("Error").With("Code", code).WithErrors(err), "layouts/main")
}

func currentUser(ctx *fiber.Ctx) users.User {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	return user
}

func (s *Server) handleMain(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	d := newData("Fairway Finds").WithUser(user)
	for _, kind := range []domain.Kind{domain.KindClub, domain.KindPlayer, domain.KindCourse} {
		page, err := s.content.List(ctx.Context(), domain.ListQuery{
			Kind:    kind,
			Sort:    domain.SortVotes,
			Page:    1,
			PerPage: 4,
		})
		if err != nil {
			return err
		}
		d = d.With("Top"+exportKey(kind), page.Items)
	}
	return ctx.Render("index", d, "layouts/main")
}

func (s *Server) handleList(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		q := parseListQuery(ctx, kind)
		page, err := s.content.List(ctx.Context(), q)
		if err != nil {
			return err
		}
		options, err := s.content.FilterOptions(ctx.Context(), kind)
		if err != nil {
			return err
		}
		d := newData(exportKey(kind)).
			WithUser(user).
			With("Kind", string(kind)).
			With("Base", webpath.Base(kind)).
			With("Page", page).
			With("Sort", string(q.Sort)).
			With("Filters", q.Filters).
			With("Options", options)
		return ctx.Render("list", d, "layouts/main")
	}
}

func (s *Server) handleShow(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		id, err := uuid.Parse(ctx.Params("id"))
		if err != nil {
			return fiber.ErrNotFound
		}
		item, err := s.content.Get(ctx.Context(), kind, id)
		if err != nil {
			return err
		}
		hasVoted := false
		if !user.IsZero() {
			hasVoted, err = s.content.HasVoted(ctx.Context(), user.ID, kind, id)
			if err != nil {
				return err
			}
		}
		similar, err := s.content.Similar(ctx.Context(), item, 4)
		if err != nil {
			return err
		}
		d := newData(item.ItemName()).
			WithUser(user).
			With("Kind", string(kind)).
			With("Base", webpath.Base(kind)).
			With("Item", item).
			With("HasVoted", hasVoted).
			With("Similar", similar).
			With("CanEdit", !user.IsZero() && (user.ID == item.Submitter() || user.Role.Moderator()))
		return ctx.Render(showTemplate(kind), d, "layouts/main")
	}
}

func (s *Server) handleNewGet(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		d := newData(newTitle(kind)).
			WithUser(currentUser(ctx)).
			With("Kind", string(kind)).
			With("Base", webpath.Base(kind))
		return ctx.Render(formTemplate(kind), d, "layouts/main")
	}
}

func (s *Server) handleNewPost(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		item, err := s.parseItemForm(ctx, kind)
		if err != nil {
			d := newData(newTitle(kind)).
				WithUser(user).
				With("Kind", string(kind)).
				With("Base", webpath.Base(kind)).
				WithErrors(err)
			return ctx.Render(formTemplate(kind), d, "layouts/main")
		}
		created, err := s.content.Submit(ctx.Context(), item, user)
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				d := newData(newTitle(kind)).
					WithUser(user).
					With("Kind", string(kind)).
					With("Base", webpath.Base(kind)).
					WithErrors(err)
				return ctx.Render(formTemplate(kind), d, "layouts/main")
			}
			return err
		}
		if created.IsApproved() {
			return ctx.Redirect(webpath.Base(kind) + "/" + created.ItemID().String())
		}
		return ctx.Redirect(webpath.Base(kind))
	}
}

func (s *Server) handleEditGet(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		id, err := uuid.Parse(ctx.Params("id"))
		if err != nil {
			return fiber.ErrNotFound
		}
		item, err := s.content.Get(ctx.Context(), kind, id)
		if err != nil {
			return err
		}
		if user.ID != item.Submitter() && !user.Role.Moderator() {
			return service.ErrForbidden
		}
		d := newData("Edit "+item.ItemName()).
			WithUser(user).
			With("Kind", string(kind)).
			With("Base", webpath.Base(kind)).
			With("Item", item).
			With("Edit", true)
		return ctx.Render(formTemplate(kind), d, "layouts/main")
	}
}

func (s *Server) handleEditPost(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		id, err := uuid.Parse(ctx.Params("id"))
		if err != nil {
			return fiber.ErrNotFound
		}
		patch, err := s.parseItemForm(ctx, kind)
		if err == nil {
			patch = withID(patch, id)
			_, err = s.content.Edit(ctx.Context(), patch, user)
		}
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				d := newData("Edit").
					WithUser(user).
					With("Kind", string(kind)).
					With("Base", webpath.Base(kind)).
					With("Item", patch).
					With("Edit", true).
					WithErrors(err)
				return ctx.Render(formTemplate(kind), d, "layouts/main")
			}
			return err
		}
		return ctx.Redirect(webpath.Base(kind) + "/" + id.String())
	}
}

func (s *Server) handleVote(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		id, err := uuid.Parse(ctx.Params("id"))
		if err != nil {
			return fiber.ErrNotFound
		}
		_, err = s.content.ToggleVote(ctx.Context(), kind, id, user.ID)
		if err != nil {
			return err
		}
		return ctx.Redirect(webpath.Base(kind) + "/" + id.String())
	}
}

func (s *Server) handleApprove(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		id, err := uuid.Parse(ctx.Params("id"))
		if err != nil {
			return fiber.ErrNotFound
		}
		_, err = s.content.Approve(ctx.Context(), kind, id, user)
		if err != nil {
			return err
		}
		return ctx.Redirect(webpath.Dashboard)
	}
}

func (s *Server) handleVerifyPlayer(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	playerID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	targetID, err := uuid.Parse(ctx.FormValue("user_id"))
	if err != nil {
		return fmt.Errorf("%w: bad user id", service.ErrValidation)
	}
	_, err = s.content.VerifyPlayer(ctx.Context(), playerID, targetID, user)
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.Players + "/" + playerID.String())
}

func (s *Server) handleDashboard(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	d := newData("Moderation").WithUser(user)
	for _, kind := range []domain.Kind{domain.KindClub, domain.KindPlayer, domain.KindCourse} {
		pending, err := s.content.Pending(ctx.Context(), kind, user)
		if err != nil {
			return err
		}
		d = d.With("Pending"+exportKey(kind), pending)
	}
	return ctx.Render("dashboard", d, "layouts/main")
}

func (s *Server) handleAdminUsers(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	list, err := s.auth.ListUsers(ctx.Context(), user)
	if err != nil {
		return err
	}
	d := newData("Users").WithUser(user).With("Users", list)
	return ctx.Render("adminUsers", d, "layouts/main")
}

func (s *Server) handleSetUserRole(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	targetID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	role := users.Role(ctx.FormValue("role"))
	_, err = s.auth.SetRole(ctx.Context(), user, targetID, role)
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.AdminUsers)
}

func (s *Server) handleImportGet(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		d := newData(importTitle(kind)).
			WithUser(currentUser(ctx)).
			With("Kind", string(kind)).
			With("Base", webpath.Base(kind))
		return ctx.Render("import", d, "layouts/main")
	}
}

func (s *Server) handleImportPost(kind domain.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			return fmt.Errorf("%w: csv file is required", service.ErrValidation)
		}
		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		defer file.Close()
		records, parseErrors, err := csvimport.Parse(kind, file)
		if err != nil {
			return fmt.Errorf("%w: %w", service.ErrValidation, err)
		}
		report, err := s.content.BulkImport(ctx.Context(), kind, records, user.ID)
		if err != nil {
			return err
		}
		rowErrors := append(parseErrors, report.Errors...)
		d := newData(importTitle(kind)).
			WithUser(user).
			With("Kind", string(kind)).
			With("Base", webpath.Base(kind)).
			With("Created", report.Created).
			With("RowErrors", rowErrors)
		return ctx.Render("import", d, "layouts/main")
	}
}

func (s *Server) handleGetProfile(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	d := newData("Profile").WithUser(user)
	return ctx.Render("profile", d, "layouts/main")
}

func (s *Server) handlePostProfile(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	bio := strings.TrimSpace(ctx.FormValue("bio"))
	image := user.ProfileImage
	if uploaded, err := s.saveUpload(ctx, "profile_image"); err != nil {
		return err
	} else if uploaded != "" {
		image = uploaded
	}
	_, err := s.auth.UpdateProfile(ctx.Context(), user.ID, bio, image)
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.Profile)
}

func (s *Server) handlePublicProfile(ctx *fiber.Ctx) error {
	viewer := currentUser(ctx)
	profiled, err := s.auth.GetUserByName(ctx.Context(), ctx.Params("username"))
	if err != nil {
		return err
	}
	submitted, voted, err := s.content.Profile(ctx.Context(), profiled.ID)
	if err != nil {
		return err
	}
	d := newData(profiled.Name).
		WithUser(viewer).
		With("Profile", profiled).
		With("Submitted", submitted).
		With("Voted", voted)
	return ctx.Render("publicProfile", d, "layouts/main")
}

func (s *Server) handleGetSignIn(ctx *fiber.Ctx) error {
	d := newData("Sign in").With("Providers", s.providers.Names())
	return ctx.Render("signin", d, "layouts/main")
}

func (s *Server) handlePostSignIn(ctx *fiber.Ctx) error {
	req, err := parseSignInRequest(ctx)
	if err != nil {
		return ctx.Render("signin", newData("Sign in").With("Providers", s.providers.Names()).WithErrors(err), "layouts/main")
	}
	user, err := s.auth.Login(ctx.Context(), req.email, req.password)
	if err != nil {
		if errors.Is(err, authservice.ErrBadCredential) {
			return ctx.Render("signin", newData("Sign in").With("Providers", s.providers.Names()).WithErrors(err), "layouts/main")
		}
		return err
	}
	return s.signInUser(ctx, user)
}

func (s *Server) handleGetSignup(ctx *fiber.Ctx) error {
	return ctx.Render("signup", newData("Sign up"), "layouts/main")
}

func (s *Server) handlePostSignup(ctx *fiber.Ctx) error {
	req, err := parseSignUpRequest(ctx)
	if err != nil {
		return ctx.Render("signup", newData("Sign up").WithErrors(err), "layouts/main")
	}
	err = s.auth.SignUp(ctx.Context(), req.name, req.email, req.password)
	if err != nil {
		if errors.Is(err, authservice.ErrUserExists) {
			return ctx.Render("signup", newData("Sign up").WithErrors(err), "layouts/main")
		}
		return err
	}
	return ctx.Redirect(webpath.Signin)
}

func (s *Server) handleSignOut(ctx *fiber.Ctx) error {
	ctx.ClearCookie("token")
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleGetForgotPassword(ctx *fiber.Ctx) error {
	return ctx.Render("forgotPassword", newData("Reset password"), "layouts/main")
}

// handlePostForgotPassword always renders the same confirmation so the form
// does not reveal which emails are registered.
func (s *Server) handlePostForgotPassword(ctx *fiber.Ctx) error {
	email := ctx.FormValue("email", "")
	user, err := s.auth.GetUserByEmail(ctx.Context(), email)
	if err == nil {
		token, err := s.auth.GeneratePasswordResetToken(user)
		if err != nil {
			return err
		}
		link := strings.TrimRight(s.cfg.ExternalURL, "/") + "/reset-password/" + token
		s.mailer.SendPasswordReset(user.Email, user.Name, link)
	} else if !errors.Is(err, authservice.ErrUserNotFound) {
		return err
	}
	return ctx.Render("forgotPassword", newData("Reset password").With("Sent", true), "layouts/main")
}

func (s *Server) handleGetResetPassword(ctx *fiber.Ctx) error {
	d := newData("Choose a new password").With("Token", ctx.Params("token"))
	return ctx.Render("resetPassword", d, "layouts/main")
}

func (s *Server) handlePostResetPassword(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	password, err := parseResetRequest(ctx)
	if err != nil {
		d := newData("Choose a new password").With("Token", token).WithErrors(err)
		return ctx.Render("resetPassword", d, "layouts/main")
	}
	err = s.auth.ResetPassword(ctx.Context(), token, password)
	if err != nil {
		if errors.Is(err, authservice.ErrNotAuthorized) {
			d := newData("Choose a new password").With("Token", token).WithErrors(errors.New("the reset link is invalid or expired"))
			return ctx.Render("resetPassword", d, "layouts/main")
		}
		return err
	}
	return ctx.Redirect(webpath.Signin)
}

const oauthStateCookie = "oauth_state"

func (s *Server) handleAuthorize(ctx *fiber.Ctx) error {
	provider, ok := s.providers.Get(ctx.Params("provider"))
	if !ok {
		return fiber.ErrNotFound
	}
	state := uuid.NewString()
	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
	})
	return ctx.Redirect(provider.AuthCodeURL(state))
}

func (s *Server) handleCallback(ctx *fiber.Ctx) error {
	provider, ok := s.providers.Get(ctx.Params("provider"))
	if !ok {
		return fiber.ErrNotFound
	}
	state := ctx.Query("state")
	if state == "" || state != ctx.Cookies(oauthStateCookie) {
		return fiber.ErrUnauthorized
	}
	ctx.ClearCookie(oauthStateCookie)
	code := ctx.Query("code")
	if code == "" {
		return fiber.ErrUnauthorized
	}
	info, err := provider.Exchange(ctx.Context(), code)
	if err != nil {
		return err
	}
	user, err := s.auth.OAuthLogin(ctx.Context(), provider.Name(), info.ID, info.Email, info.Name)
	if err != nil {
		return err
	}
	return s.signInUser(ctx, user)
}

func (s *Server) signInUser(ctx *fiber.Ctx, user users.User) error {
	cookie, err := s.auth.GenerateJWTCookie(user.ID, s.cfg.Host)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)
	return ctx.Redirect(webpath.Home)
}

func (s *Server) parseItemForm(ctx *fiber.Ctx, kind domain.Kind) (domain.Item, error) {
	imageField := "image"
	if kind == domain.KindPlayer {
		imageField = "profile_image_file"
	}
	uploaded, err := s.saveUpload(ctx, imageField)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.KindClub:
		club, err := parseClubForm(ctx)
		if err != nil {
			return nil, err
		}
		if uploaded != "" {
			club.ImageURL = uploaded
		}
		return club, nil
	case domain.KindPlayer:
		player, err := parsePlayerForm(ctx)
		if err != nil {
			return nil, err
		}
		if uploaded != "" {
			player.ProfileImage = uploaded
		}
		return player, nil
	default:
		course, err := parseCourseForm(ctx)
		if err != nil {
			return nil, err
		}
		if uploaded != "" {
			course.ImageURL = uploaded
		}
		return course, nil
	}
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// saveUpload stores an optional uploaded file under the upload dir with a
// timestamp-prefixed sanitized name and returns its public URL. Returns ""
// when the field is absent.
func (s *Server) saveUpload(ctx *fiber.Ctx, field string) (string, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", nil
	}
	name := unsafeFilename.ReplaceAllString(filepath.Base(fileHeader.Filename), "_")
	name = fmt.Sprintf("%d_%s", time.Now().UnixNano(), name)
	if err := ctx.SaveFile(fileHeader, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func withID(item domain.Item, id uuid.UUID) domain.Item {
	switch v := item.(type) {
	case domain.Club:
		v.ID = id
		return v
	case domain.Player:
		v.ID = id
		return v
	case domain.Course:
		v.ID = id
		return v
	}
	return item
}

func exportKey(kind domain.Kind) string {
	switch kind {
	case domain.KindPlayer:
		return "Players"
	case domain.KindCourse:
		return "Courses"
	default:
		return "Clubs"
	}
}

func newTitle(kind domain.Kind) string {
	switch kind {
	case domain.KindPlayer:
		return "Add a player"
	case domain.KindCourse:
		return "Add a course"
	default:
		return "Add a club"
	}
}

func importTitle(kind domain.Kind) string {
	switch kind {
	case domain.KindPlayer:
		return "Import players"
	case domain.KindCourse:
		return "Import courses"
	default:
		return "Import clubs"
	}
}

func showTemplate(kind domain.Kind) string {
	switch kind {
	case domain.KindPlayer:
		return "playerCard"
	case domain.KindCourse:
		return "courseCard"
	default:
		return "clubCard"
	}
}

func formTemplate(kind domain.Kind) string {
	switch kind {
	case domain.KindPlayer:
		return "playerForm"
	case domain.KindCourse:
		return "courseForm"
	default:
		return "clubForm"
	}
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
