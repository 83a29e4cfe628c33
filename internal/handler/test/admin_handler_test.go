package test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogHub/internal/auth"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
	"blogHub/internal/service"
)

func TestAdminStatsHandler(t *testing.T) {
	th := newTestHandlers()
	th.admin.On("Stats", mockCtx).Return(&models.SiteStats{TotalUsers: 3, TotalPosts: 9}, nil)

	rr := httptest.NewRecorder()
	th.AdminStats(rr, newRequest(t, http.MethodGet, "/api/admin/stats", nil, nil, root))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(decodeEnvelope(t, rr).Data), `"totalPosts":9`)
}

func TestAdminUpdateRoleHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		err        error
		wantStatus int
	}{
		{"promoted", service.RoleUpdate{Role: "admin"}, nil, http.StatusOK},
		{"unknown role", service.RoleUpdate{Role: "owner"}, nil, http.StatusBadRequest},
		{"last admin", service.RoleUpdate{Role: "user"}, &service.Error{Kind: service.ErrLastAdmin, Message: "cannot remove the last admin"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandlers()
			role := tt.body.(service.RoleUpdate).Role
			if tt.err != nil {
				th.admin.On("UpdateRole", mockCtx, root, "u1", role).Return(nil, tt.err)
			} else {
				th.admin.On("UpdateRole", mockCtx, root, "u1", role).Return(&models.User{UserID: "u1", Role: role}, nil)
			}

			rr := httptest.NewRecorder()
			th.AdminUpdateRole(rr, newRequest(t, http.MethodPut, "/api/admin/users/u1/role", tt.body, map[string]string{"id": "u1"}, root))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAdminListAndDeleteHandlers(t *testing.T) {
	th := newTestHandlers()
	page := pagination.Params{Page: 1, Limit: 10}
	th.admin.On("ListUsers", mockCtx, service.UserQuery{Search: "al", Role: "user", Page: page}).
		Return([]*models.AdminUser{}, pagination.NewMeta(page, 0), nil)
	th.admin.On("ListPosts", mockCtx, service.PostQuery{Status: "draft", Page: page}).
		Return([]*models.Post{}, pagination.NewMeta(page, 0), nil)
	th.admin.On("ListComments", mockCtx, service.CommentQuery{PostID: "p1", Page: page}).
		Return([]*models.Comment{}, pagination.NewMeta(page, 0), nil)
	th.admin.On("DeleteUser", mockCtx, root, "u1").Return(nil)
	th.admin.On("DeletePost", mockCtx, "p1").Return(nil)
	th.admin.On("DeleteComment", mockCtx, "c1").Return(int64(1), nil)

	calls := []struct {
		handler http.HandlerFunc
		method  string
		target  string
		vars    map[string]string
	}{
		{th.AdminListUsers, http.MethodGet, "/api/admin/users?search=al&role=user", nil},
		{th.AdminListPosts, http.MethodGet, "/api/admin/posts?status=draft", nil},
		{th.AdminListComments, http.MethodGet, "/api/admin/comments?postId=p1", nil},
		{th.AdminDeleteUser, http.MethodDelete, "/api/admin/users/u1", map[string]string{"id": "u1"}},
		{th.AdminDeletePost, http.MethodDelete, "/api/admin/posts/p1", map[string]string{"id": "p1"}},
		{th.AdminDeleteComment, http.MethodDelete, "/api/admin/comments/c1", map[string]string{"id": "c1"}},
	}

	for _, c := range calls {
		rr := httptest.NewRecorder()
		c.handler(rr, newRequest(t, c.method, c.target, nil, c.vars, root))
		assert.Equal(t, http.StatusOK, rr.Code, c.target)
	}
	th.admin.AssertExpectations(t)
}

func multipartImage(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="cat.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadImageHandler(t *testing.T) {
	t.Run("uploaded", func(t *testing.T) {
		th := newTestHandlers()
		th.images.On("Upload", mockCtx, alice, "cat.png", mock.Anything, int64(4), "image/png").
			Return(&models.Image{ObjectName: "202405-abc.png", ImageURL: "http://cdn/images/202405-abc.png"}, nil)

		body, contentType := multipartImage(t, "image/png", []byte("\x89PNG"))
		req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(auth.WithActor(req.Context(), alice))

		rr := httptest.NewRecorder()
		th.UploadImage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		data := string(decodeEnvelope(t, rr).Data)
		assert.Contains(t, data, `"publicId":"202405-abc.png"`)
		assert.Contains(t, data, `"url":"http://cdn/images/202405-abc.png"`)
	})

	t.Run("no file", func(t *testing.T) {
		th := newTestHandlers()
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("other", "x"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rr := httptest.NewRecorder()
		th.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		th.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejected type", func(t *testing.T) {
		th := newTestHandlers()
		th.images.On("Upload", mockCtx, alice, "cat.png", mock.Anything, int64(3), "text/plain").
			Return(nil, &service.Error{Kind: service.ErrValidation, Message: "only image files are allowed"})

		body, contentType := multipartImage(t, "text/plain", []byte("abc"))
		req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(auth.WithActor(req.Context(), alice))

		rr := httptest.NewRecorder()
		th.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "only image files are allowed", decodeEnvelope(t, rr).Message)
	})
}

func TestDeleteImageHandler(t *testing.T) {
	th := newTestHandlers()
	th.images.On("Delete", mockCtx, alice, "202405-abc.png").
		Return(&service.Error{Kind: service.ErrForbidden, Message: "not authorized to delete this image"})

	rr := httptest.NewRecorder()
	th.DeleteImage(rr, newRequest(t, http.MethodDelete, "/api/upload/image/202405-abc.png", nil, map[string]string{"publicId": "202405-abc.png"}, alice))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
