package auth

import (
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	InsufficientPermissions = errors.New("Insufficient permissions")
	Unauthorized            = errors.New("connection unauthorized")
)

type TdbUserRole int

const (
	TdbUserRoleAdmin TdbUserRole = iota
	TdbUserRoleReadOnly
)

func (r TdbUserRole) String() string {
	switch r {
	case TdbUserRoleAdmin:
		return "admin"
	case TdbUserRoleReadOnly:
		return "readOnly"
	default:
		return "unknown"
	}
}

func ParseRole(s string) (TdbUserRole, error) {
	switch strings.ToLower(s) {
	case "", "admin":
		return TdbUserRoleAdmin, nil
	case "readonly", "read-only":
		return TdbUserRoleReadOnly, nil
	}
	return 0, errors.Errorf("unknown role %q", s)
}

type TdbUser struct {
	Id       string
	Name     string
	Password []byte
	Role     TdbUserRole
}

func NewUser(name, password string, role TdbUserRole) *TdbUser {
	// password max size is 72 bytes because of bcrypt limit
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return &TdbUser{uuid.New().String(), name, hashedPassword, role}
}

func (u *TdbUser) ValidateUser(password string) bool {
	return bcrypt.CompareHashAndPassword(u.Password, []byte(password)) == nil
}

func (u *TdbUser) HasClearance(r TdbUserRole) bool { return u.Role <= r }

// Users holds the accounts a server accepts. With no users every
// connection is an anonymous admin.
type Users []*TdbUser

// UsersFromEnv builds the root user from TDB_USER and TDB_PASS, plus an
// optional read-only user from TDB_READONLY_USER and TDB_READONLY_PASS.
func UsersFromEnv() Users {
	users := Users{}
	if name := os.Getenv("TDB_USER"); name != "" {
		users = append(users, NewUser(name, os.Getenv("TDB_PASS"), TdbUserRoleAdmin))
	}
	if name := os.Getenv("TDB_READONLY_USER"); name != "" {
		users = append(users, NewUser(name, os.Getenv("TDB_READONLY_PASS"), TdbUserRoleReadOnly))
	}
	return users
}

// Validate returns the user matching the credentials.
func (users Users) Validate(name, password string) (*TdbUser, error) {
	if len(users) == 0 {
		return &TdbUser{Id: uuid.New().String(), Role: TdbUserRoleAdmin}, nil
	}
	if name == "" {
		return nil, Unauthorized
	}
	for _, u := range users {
		if u.Name == name && u.ValidateUser(password) {
			return u, nil
		}
	}
	return nil, Unauthorized
}

// Credentials reads `auth=user:pass`, the username and password query
// params, or the Authorization header, in that order.
func Credentials(r *http.Request) (string, string) {
	url_query := r.URL.Query()
	var conn_auth string
	if url_query.Has("auth") {
		conn_auth = url_query.Get("auth")
	} else if url_query.Has("username") || url_query.Has("password") {
		return url_query.Get("username"), url_query.Get("password")
	} else {
		conn_auth = r.Header.Get("Authorization")
	}
	name, password, _ := strings.Cut(conn_auth, ":")
	return name, password
}
