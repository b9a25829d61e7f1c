package request

import (
	"errors"
	"net/http"
	"strconv"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/scope"
	"go-worktrack/internal/shared/storage"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key the session middleware stores the actor under.
const ActorKey = "actor"

var (
	ErrInvalidID = apperror.InvalidField("Id")
	ErrNoActor   = apperror.ErrUnauthorized
	ErrNoFile    = apperror.RequiredField("File")
	ErrBadUpload = apperror.InvalidField("File")
)

// Actor returns the authenticated actor set by the session middleware.
func Actor(c *gin.Context) (contextutil.Actor, error) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return contextutil.Actor{}, ErrNoActor
	}
	actor, ok := v.(contextutil.Actor)
	if !ok || actor.EmployeeID == 0 {
		return contextutil.Actor{}, ErrNoActor
	}
	return actor, nil
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Page reads the 1-based "page" query parameter, clamped to scope.MaxPage.
func Page(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return min(page, scope.MaxPage)
}

// File opens the multipart file under field. A missing field yields a nil
// upload and a no-op release.
func File(c *gin.Context, field string) (*storage.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, ErrBadUpload
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, ErrBadUpload
	}
	return &storage.Upload{FileName: fh.Filename, Size: fh.Size, Content: f}, func() { _ = f.Close() }, nil
}

// RequiredFile is File with a missing field reported as a validation error.
func RequiredFile(c *gin.Context, field string) (*storage.Upload, func(), error) {
	up, release, err := File(c, field)
	if err == nil && up == nil {
		return nil, release, ErrNoFile
	}
	return up, release, err
}
