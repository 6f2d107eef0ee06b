package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"

	"github.com/gameroster/roster-system/handlers"
	"github.com/gameroster/roster-system/middleware"
	"github.com/gameroster/roster-system/models"
	"github.com/gameroster/roster-system/repositories"
	"github.com/gameroster/roster-system/routes"
	"github.com/gameroster/roster-system/services"
)

const testJWTSecret = "test-secret"

// In-memory repository fakes standing in for Postgres.

type fakePlayerRepo struct {
	players []models.Player
	nextID  int
}

func (f *fakePlayerRepo) Create(_ context.Context, p *models.Player) error {
	for _, existing := range f.players {
		if existing.Name == p.Name {
			return repositories.ErrPlayerNameConflict
		}
		if existing.Email == p.Email {
			return repositories.ErrPlayerEmailConflict
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.players = append(f.players, *p)
	return nil
}

func (f *fakePlayerRepo) ExistsByID(_ context.Context, id int) (bool, error) {
	for _, p := range f.players {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlayerRepo) ExistsByNameOrEmail(_ context.Context, name, email string) (bool, error) {
	for _, p := range f.players {
		if p.Name == name || p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeGameRepo struct {
	games  []models.Game
	nextID int
}

func (f *fakeGameRepo) Create(_ context.Context, g *models.Game) error {
	f.nextID++
	g.ID = f.nextID
	f.games = append(f.games, *g)
	return nil
}

func (f *fakeGameRepo) ExistsByID(_ context.Context, id int) (bool, error) {
	for _, g := range f.games {
		if g.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeMembershipRepo struct {
	memberships []models.Membership
	nextID      int
}

func (f *fakeMembershipRepo) Create(_ context.Context, m *models.Membership) error {
	for _, existing := range f.memberships {
		if existing.GameID == m.GameID && existing.PlayerID == m.PlayerID {
			return repositories.ErrMembershipConflict
		}
	}
	f.nextID++
	m.ID = f.nextID
	f.memberships = append(f.memberships, *m)
	return nil
}

func (f *fakeMembershipRepo) ExistsByGameAndPlayer(_ context.Context, gameID, playerID int) (bool, error) {
	for _, m := range f.memberships {
		if m.GameID == gameID && m.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembershipRepo) CountByGame(_ context.Context, gameID int) (int, error) {
	count := 0
	for _, m := range f.memberships {
		if m.GameID == gameID {
			count++
		}
	}
	return count, nil
}

type APISuite struct {
	suite.Suite
	players     *fakePlayerRepo
	games       *fakeGameRepo
	memberships *fakeMembershipRepo
	router      *chi.Mux
	authService services.AuthService
	token       string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	// The auth service hashes its credential with bcrypt, so build it once.
	authService, err := services.NewStaticAuthService("test", "test")
	s.Require().NoError(err)
	s.authService = authService

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test",
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	s.token = signed
}

func (s *APISuite) SetupTest() {
	s.players = &fakePlayerRepo{}
	s.games = &fakeGameRepo{}
	s.memberships = &fakeMembershipRepo{}

	playerService := services.NewPlayerService(s.players)
	gameService := services.NewGameService(s.games)
	playerGameService := services.NewPlayerGameService(s.memberships)

	authHandler := handlers.NewAuthHandler(s.authService, testJWTSecret)
	playerHandler := handlers.NewPlayerHandler(playerService)
	gameHandler := handlers.NewGameHandler(gameService, playerService, playerGameService)

	s.router = chi.NewRouter()
	routes.SetupRoutes(s.router, middleware.NewAuthenticator(testJWTSecret), authHandler, playerHandler, gameHandler)
}

func (s *APISuite) do(method, target string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func (s *APISuite) registerPlayer(name, email string) int {
	rec, body := s.do(http.MethodPost, "/new_player", map[string]string{"name": name, "email": email}, s.token)
	s.Require().Equal(http.StatusOK, rec.Code)
	return int(body["id"].(float64))
}

func (s *APISuite) createGame(name string) int {
	rec, body := s.do(http.MethodPost, "/new_game", map[string]string{"name": name}, s.token)
	s.Require().Equal(http.StatusOK, rec.Code)
	return int(body["id"].(float64))
}

func (s *APISuite) attach(gameID, playerID int) (*httptest.ResponseRecorder, map[string]interface{}) {
	target := fmt.Sprintf("/add_player_to_game?game_id=%d&player_id=%d", gameID, playerID)
	return s.do(http.MethodPost, target, nil, s.token)
}

// Auth endpoints

func (s *APISuite) TestLoginIssuesUsableToken() {
	rec, body := s.do(http.MethodPost, "/login", map[string]string{"username": "test", "password": "test"}, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	token, ok := body["access_token"].(string)
	s.Require().True(ok)
	s.NotEmpty(token)

	rec, body = s.do(http.MethodGet, "/user", nil, token)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("test", body["user"])
}

func (s *APISuite) TestLoginRejectsBadCredentials() {
	rec, body := s.do(http.MethodPost, "/login", map[string]string{"username": "test", "password": "nope"}, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Bad username or password", body["detail"])
}

func (s *APISuite) TestUserRequiresToken() {
	rec, body := s.do(http.MethodGet, "/user", nil, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Missing Authorization Header", body["detail"])
}

// /new_player

func (s *APISuite) TestRegisterPlayerSucceeds() {
	rec, body := s.do(http.MethodPost, "/new_player", map[string]string{"name": "a11ce", "email": "a11ce@x.com"}, s.token)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", body["status"])
	s.Equal(true, body["success"])
	s.Equal(float64(1), body["id"])
}

func (s *APISuite) TestRegisterPlayerDuplicateEmail() {
	s.registerPlayer("a11ce", "a@x.com")

	rec, body := s.do(http.MethodPost, "/new_player", map[string]string{"name": "b0b", "email": "a@x.com"}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("error", body["status"])
	s.Equal("Player with such name or email already exists", body["message"])
	s.Len(s.players.players, 1)
}

func (s *APISuite) TestRegisterPlayerDuplicateName() {
	s.registerPlayer("a11ce", "a@x.com")

	rec, body := s.do(http.MethodPost, "/new_player", map[string]string{"name": "a11ce", "email": "b@x.com"}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Player with such name or email already exists", body["message"])
}

func (s *APISuite) TestRegisterPlayerRejectsNonHexName() {
	rec, body := s.do(http.MethodPost, "/new_player", map[string]string{"name": "mallory", "email": "m@x.com"}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("error", body["status"])
	s.Empty(s.players.players)
}

func (s *APISuite) TestRegisterPlayerRejectsOversizeName() {
	name := strings.Repeat("a", models.PlayerFieldMaxLength+1)

	rec, _ := s.do(http.MethodPost, "/new_player", map[string]string{"name": name, "email": "a@x.com"}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.players.players)
}

func (s *APISuite) TestRegisterPlayerRejectsBadEmail() {
	rec, _ := s.do(http.MethodPost, "/new_player", map[string]string{"name": "a11ce", "email": "not-an-email"}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.players.players)
}

func (s *APISuite) TestRegisterPlayerRejectsOversizeEmail() {
	local := strings.Repeat("a", models.PlayerFieldMaxLength)

	rec, _ := s.do(http.MethodPost, "/new_player", map[string]string{"name": "a11ce", "email": local + "@x.com"}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.players.players)
}

func (s *APISuite) TestRegisterPlayerWithoutToken() {
	rec, body := s.do(http.MethodPost, "/new_player", map[string]string{"name": "a11ce", "email": "a@x.com"}, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Missing Authorization Header", body["detail"])
	s.Empty(s.players.players)
}

// /new_game

func (s *APISuite) TestCreateGameSucceeds() {
	rec, body := s.do(http.MethodPost, "/new_game", map[string]string{"name": "G1"}, s.token)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", body["status"])
	s.Equal(true, body["success"])
	s.Equal(float64(1), body["id"])
}

func (s *APISuite) TestCreateGameAllowsDuplicateName() {
	s.createGame("G1")
	id := s.createGame("G1")

	s.Equal(2, id)
	s.Len(s.games.games, 2)
}

func (s *APISuite) TestCreateGameRejectsOversizeName() {
	name := strings.Repeat("x", models.GameNameMaxLength+1)

	rec, _ := s.do(http.MethodPost, "/new_game", map[string]string{"name": name}, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.games.games)
}

// /add_player_to_game

func (s *APISuite) TestAttachPlayerSucceeds() {
	playerID := s.registerPlayer("a11ce", "a@x.com")
	gameID := s.createGame("G1")

	rec, body := s.attach(gameID, playerID)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", body["status"])
	s.Equal(float64(gameID), body["id"])
	s.Equal(true, body["success"])
	s.Len(s.memberships.memberships, 1)
}

func (s *APISuite) TestAttachPlayerAcceptsBodyParams() {
	playerID := s.registerPlayer("a11ce", "a@x.com")
	gameID := s.createGame("G1")

	rec, body := s.do(http.MethodPost, "/add_player_to_game", map[string]int{"game_id": gameID, "player_id": playerID}, s.token)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", body["status"])
	s.Len(s.memberships.memberships, 1)
}

func (s *APISuite) TestAttachSixthPlayerRejected() {
	gameID := s.createGame("G1")

	for i := 1; i <= models.MaxPlayersInGame; i++ {
		playerID := s.registerPlayer(fmt.Sprintf("ace%d", i), fmt.Sprintf("p%d@x.com", i))
		rec, _ := s.attach(gameID, playerID)
		s.Require().Equal(http.StatusOK, rec.Code)
	}

	sixth := s.registerPlayer("ace6", "p6@x.com")
	rec, body := s.attach(gameID, sixth)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("The game already has the maximum number of players (5).", body["message"])
	s.Len(s.memberships.memberships, models.MaxPlayersInGame)
}

func (s *APISuite) TestAttachSamePairTwice() {
	playerID := s.registerPlayer("a11ce", "a@x.com")
	gameID := s.createGame("G1")

	rec, _ := s.attach(gameID, playerID)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec, body := s.attach(gameID, playerID)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Player already in game", body["message"])
	s.Len(s.memberships.memberships, 1)
}

func (s *APISuite) TestAttachUnknownPlayer() {
	gameID := s.createGame("G1")

	rec, body := s.attach(gameID, 999)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("The player with this id does not exist.", body["message"])
	s.Empty(s.memberships.memberships)
}

func (s *APISuite) TestAttachUnknownGame() {
	playerID := s.registerPlayer("a11ce", "a@x.com")

	rec, body := s.attach(999, playerID)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("The game with this id does not exist.", body["message"])
	s.Empty(s.memberships.memberships)
}

func (s *APISuite) TestAttachChecksPlayerBeforeGame() {
	// Both ids are unknown; the player check runs first, so its message wins.
	rec, body := s.attach(999, 999)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("The player with this id does not exist.", body["message"])
}

func (s *APISuite) TestAttachRejectsNonIntegerParams() {
	rec, body := s.do(http.MethodPost, "/add_player_to_game?game_id=abc&player_id=1", nil, s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("error", body["status"])
}

func (s *APISuite) TestAttachWithoutToken() {
	rec, _ := s.do(http.MethodPost, "/add_player_to_game?game_id=1&player_id=1", nil, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(s.memberships.memberships)
}
