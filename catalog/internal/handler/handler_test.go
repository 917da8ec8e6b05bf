package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
	"github.com/Astemirdum/home-library/catalog/internal/handler"
	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/home-library/catalog/internal/handler/mocks"
)

const secret = "test-secret"

var (
	adminID  = auth.Identity{UserID: "a1", Email: "admin@x.io", Groups: []string{"admin"}}
	memberID = auth.Identity{UserID: "u1", Email: "user@x.io", Groups: []string{}}
)

func token(t *testing.T, id auth.Identity) string {
	t.Helper()
	groups := make([]any, 0, len(id.Groups))
	for _, g := range id.Groups {
		groups = append(groups, g)
	}
	tok, err := auth.Sign(secret, auth.Claims{
		"sub":            id.UserID,
		"email":          id.Email,
		"cognito:groups": groups,
	}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func newRouter(t *testing.T, svc handler.CatalogService) *echo.Echo {
	t.Helper()
	tokens, err := auth.NewHMACValidator(auth.Config{Secret: secret})
	require.NoError(t, err)
	return handler.New(svc, tokens, zap.NewExample().Named("test")).NewRouter()
}

type request struct {
	method string
	target string
	body   string
	caller *auth.Identity
}

type response struct {
	expectedCode int
	expectedBody string
}

func serve(t *testing.T, e *echo.Echo, req request) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(req.method, req.target, strings.NewReader(req.body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if req.caller != nil {
		r.Header.Set(echo.HeaderAuthorization, token(t, *req.caller))
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_Books(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockCatalogService)

	dune := model.PublicBook{ID: "111", ISBN: "111", Title: "Dune", Author: "Frank Herbert", Authors: "Frank Herbert", Status: "available", Available: 1}

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		req          request
		response     response
	}{
		{
			name: "get ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().GetBook(gomock.Any(), "111").Return(dune, nil)
			},
			req:      request{method: http.MethodGet, target: "/api/v1/books/111"},
			response: response{expectedCode: http.StatusOK},
		},
		{
			name: "get not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().GetBook(gomock.Any(), "999").Return(model.PublicBook{}, errs.ErrNotFound)
			},
			req:      request{method: http.MethodGet, target: "/api/v1/books/999"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"message":"Book not found"}`},
		},
		{
			name: "list with paging",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListBooks(gomock.Any(), 2, 10).
					Return(model.ListBooks{Books: []model.PublicBook{}, Pagination: model.Pagination{Total: 11, Page: 2, PageSize: 10}}, nil)
			},
			req: request{method: http.MethodGet, target: "/api/v1/books?page=2&size=10"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"books":[],"pagination":{"total":11,"page":2,"pageSize":10}}`,
			},
		},
		{
			name: "list oversized paging clamped",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListBooks(gomock.Any(), 100000, 1000).
					Return(model.ListBooks{Books: []model.PublicBook{}, Pagination: model.Pagination{Total: 11, Page: 100000, PageSize: 1000}}, nil)
			},
			req: request{method: http.MethodGet, target: "/api/v1/books?page=9223372036854775807&size=5000"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"books":[],"pagination":{"total":11,"page":100000,"pageSize":1000}}`,
			},
		},
		{
			name:         "list bad page",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			req:          request{method: http.MethodGet, target: "/api/v1/books?page=x"},
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"invalid page"}`},
		},
		{
			name: "list store failure",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListBooks(gomock.Any(), 0, 0).
					Return(model.ListBooks{}, fmt.Errorf("%w: ListBooks: %w", errs.ErrStore, errors.New("db down")))
			},
			req: request{method: http.MethodGet, target: "/api/v1/books"},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"error":"Failed to fetch books","message":"store failure: ListBooks: db down"}`,
			},
		},
		{
			name: "create ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil)
				r.EXPECT().CreateBook(gomock.Any(), adminID,
					model.CreateBookRequest{ISBN: "111", Title: "Dune", Authors: "Frank Herbert"}).
					Return(dune, nil)
			},
			req: request{
				method: http.MethodPost, target: "/api/v1/books", caller: &adminID,
				body: `{"isbn":"111","title":"Dune","authors":"Frank Herbert"}`,
			},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name: "create missing fields",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil)
				r.EXPECT().CreateBook(gomock.Any(), adminID, model.CreateBookRequest{ISBN: "111"}).
					Return(model.PublicBook{}, fmt.Errorf("%w: title, author", errs.ErrValidation))
			},
			req: request{method: http.MethodPost, target: "/api/v1/books", caller: &adminID, body: `{"isbn":"111"}`},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"missing required fields: title, author"}`,
			},
		},
		{
			name: "create by member",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(nil)
				r.EXPECT().CreateBook(gomock.Any(), memberID, gomock.Any()).Return(model.PublicBook{}, errs.ErrAuthorization)
			},
			req:      request{method: http.MethodPost, target: "/api/v1/books", caller: &memberID, body: `{"isbn":"1"}`},
			response: response{expectedCode: http.StatusForbidden, expectedBody: `{"message":"access denied"}`},
		},
		{
			name: "create conflict",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil)
				r.EXPECT().CreateBook(gomock.Any(), adminID, gomock.Any()).
					Return(model.PublicBook{}, fmt.Errorf("book 111 %w", errs.ErrConflict))
			},
			req:      request{method: http.MethodPost, target: "/api/v1/books", caller: &adminID, body: `{"isbn":"111"}`},
			response: response{expectedCode: http.StatusConflict, expectedBody: `{"message":"book 111 already exists"}`},
		},
		{
			name:         "create invalid available",
			mockBehavior: func(r *service_mocks.MockCatalogService) { r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil) },
			req: request{
				method: http.MethodPost, target: "/api/v1/books", caller: &adminID,
				body: `{"isbn":"111","title":"Dune","author":"F","available":5}`,
			},
			response: response{expectedCode: http.StatusBadRequest},
		},
		{
			name: "update blank title",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil)
				blank := " "
				r.EXPECT().UpdateBook(gomock.Any(), adminID, "111", model.UpdateBookRequest{Title: &blank}).
					Return(model.PublicBook{}, &errs.FieldError{Field: "title", Reason: "must not be empty"})
			},
			req:      request{method: http.MethodPut, target: "/api/v1/books/111", caller: &adminID, body: `{"title":" "}`},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"title must not be empty"}`},
		},
		{
			name: "update not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil)
				notes := "x"
				r.EXPECT().UpdateBook(gomock.Any(), adminID, "999", model.UpdateBookRequest{Notes: &notes}).
					Return(model.PublicBook{}, errs.ErrNotFound)
			},
			req:      request{method: http.MethodPut, target: "/api/v1/books/999", caller: &adminID, body: `{"notes":"x"}`},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"message":"Book not found"}`},
		},
		{
			name: "delete ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), adminID).Return(nil)
				r.EXPECT().DeleteBook(gomock.Any(), adminID, "111").Return(nil)
			},
			req:      request{method: http.MethodDelete, target: "/api/v1/books/111", caller: &adminID},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"message":"Book with ISBN 111 deleted."}`},
		},
		{
			name: "delete anonymous",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().DeleteBook(gomock.Any(), auth.Anonymous, "111").Return(errs.ErrAuthorization)
			},
			req:      request{method: http.MethodDelete, target: "/api/v1/books/111"},
			response: response{expectedCode: http.StatusForbidden, expectedBody: `{"message":"access denied"}`},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			tt.mockBehavior(svc)

			w := serve(t, newRouter(t, svc), tt.req)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Favorites(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		req          request
		response     response
	}{
		{
			name: "add ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(nil)
				r.EXPECT().AddFavorite(gomock.Any(), memberID, "444").Return(model.Favorite{}, nil)
			},
			req:      request{method: http.MethodPost, target: "/api/v1/favorites/444", caller: &memberID},
			response: response{expectedCode: http.StatusCreated, expectedBody: `{"message":"Book added to favorites"}`},
		},
		{
			name: "add over limit",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(nil)
				r.EXPECT().AddFavorite(gomock.Any(), memberID, "444").Return(model.Favorite{}, errs.ErrLimitExceeded)
			},
			req:      request{method: http.MethodPost, target: "/api/v1/favorites/444", caller: &memberID},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"Maximum of 3 favorites allowed"}`},
		},
		{
			name: "add duplicate",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(nil)
				r.EXPECT().AddFavorite(gomock.Any(), memberID, "444").Return(model.Favorite{}, errs.ErrDuplicate)
			},
			req:      request{method: http.MethodPost, target: "/api/v1/favorites/444", caller: &memberID},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"Book is already in favorites"}`},
		},
		{
			name: "add missing book",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(nil)
				r.EXPECT().AddFavorite(gomock.Any(), memberID, "404").Return(model.Favorite{}, fmt.Errorf("book %w", errs.ErrNotFound))
			},
			req:      request{method: http.MethodPost, target: "/api/v1/favorites/404", caller: &memberID},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"message":"Book not found"}`},
		},
		{
			name: "list anonymous",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListFavorites(gomock.Any(), auth.Anonymous).Return(nil, errs.ErrAuthentication)
			},
			req:      request{method: http.MethodGet, target: "/api/v1/favorites"},
			response: response{expectedCode: http.StatusUnauthorized, expectedBody: `{"message":"User not authenticated"}`},
		},
		{
			name: "list ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(nil)
				r.EXPECT().ListFavorites(gomock.Any(), memberID).Return([]model.Favorite{{
					UserID: "u1", ISBN: "111", Title: "Dune", Author: "Frank Herbert",
					CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
				}}, nil)
			},
			req: request{method: http.MethodGet, target: "/api/v1/favorites", caller: &memberID},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"userId":"u1","isbn":"111","title":"Dune","author":"Frank Herbert","createdAt":"2024-03-01T10:00:00Z"}]`,
			},
		},
		{
			name: "remove ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().RecordMember(gomock.Any(), memberID).Return(errors.New("directory down"))
				r.EXPECT().RemoveFavorite(gomock.Any(), memberID, "111").Return(nil)
			},
			req:      request{method: http.MethodDelete, target: "/api/v1/favorites/111", caller: &memberID},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"message":"Book removed from favorites"}`},
		},
		{
			name: "admin favorites",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().AdminFavorites(gomock.Any()).Return(model.ListAdminFavorites{
					Admins: []model.AdminFavorites{{Username: "Ann", Favorites: []model.AdminFavoriteBook{}}},
				}, nil)
			},
			req: request{method: http.MethodGet, target: "/api/v1/admin-favorites"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"admins":[{"username":"Ann","favorites":[]}]}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			tt.mockBehavior(svc)

			w := serve(t, newRouter(t, svc), tt.req)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Transport(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	svc := service_mocks.NewMockCatalogService(c)
	e := newRouter(t, svc)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", http.NoBody)
	r.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/manage/health", http.NoBody)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	r = httptest.NewRequest(http.MethodOptions, "/api/v1/books", http.NoBody)
	r.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	r.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, "*", w.Header().Get(echo.HeaderAccessControlAllowOrigin))
	require.Contains(t, w.Header().Get(echo.HeaderAccessControlAllowHeaders), "X-Api-Key")
}
