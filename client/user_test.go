package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/offanish/proshop/client"
	"github.com/offanish/proshop/models"
)

func TestUserLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])
		json.NewEncoder(w).Encode(client.UserInfo{
			ID: "u1", Name: "Alice", Email: "a@b.com", Token: "tok-123",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cache := client.NewMemCache()
	gw := client.NewGateway(srv.URL)
	user := client.NewUserSlice(gw, cache)

	require.NoError(t, user.Login(context.Background(), "a@b.com", "secret"))

	st := user.State()
	require.False(t, st.Loading)
	require.True(t, st.Success)
	require.NotNil(t, st.UserInfo)
	require.Equal(t, "tok-123", st.UserInfo.Token)
	require.Equal(t, "tok-123", user.Token())

	var stored client.UserInfo
	ok, err := cache.Get(client.CacheKeyUserInfo, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, *st.UserInfo, stored)
}

func TestUserLoginFailureKeepsSession(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			json.NewEncoder(w).Encode(client.UserInfo{ID: "u1", Name: "Alice", Token: "tok-123"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	user := client.NewUserSlice(client.NewGateway(srv.URL), client.NewMemCache())
	require.NoError(t, user.Login(context.Background(), "a@b.com", "secret"))

	err := user.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	st := user.State()
	require.False(t, st.Loading)
	require.Equal(t, "Invalid email or password", st.Error)
	require.NotNil(t, st.UserInfo, "rejected dispatch leaves prior session untouched")
	require.Equal(t, "tok-123", st.UserInfo.Token)
}

func TestUserSeedsFromCache(t *testing.T) {
	cache := client.NewMemCache()
	require.NoError(t, cache.Put(client.CacheKeyUserInfo, client.UserInfo{ID: "u1", Token: "tok-9"}))

	user := client.NewUserSlice(client.NewGateway("http://unused"), cache)
	require.Equal(t, "tok-9", user.Token())
}

func TestLogoutCascade(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.UserInfo{ID: "u1", IsAdmin: true, Token: "tok-123"})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.User{{ID: "u1"}, {ID: "u2"}})
	})
	mux.HandleFunc("/orders/myorders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Order{{ID: 1}, {ID: 2}})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Order{{ID: 1}, {ID: 2}, {ID: 3}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cache := client.NewMemCache()
	store := client.NewStore(srv.URL, cache)
	ctx := context.Background()

	require.NoError(t, store.User.Login(ctx, "a@b.com", "secret"))
	require.NoError(t, store.User.ListAll(ctx))
	require.NoError(t, store.Order.GetMine(ctx))
	require.NoError(t, store.Order.GetAll(ctx))

	require.NotEmpty(t, store.User.State().Users)
	require.NotEmpty(t, store.Order.State().MyOrders)
	require.NotEmpty(t, store.Order.State().AllOrders)

	require.NoError(t, store.Logout())

	userState := store.User.State()
	require.Nil(t, userState.UserInfo)
	require.Nil(t, userState.UserDetails)
	require.Empty(t, userState.Users)
	require.Empty(t, store.Order.State().MyOrders)
	require.Empty(t, store.Order.State().AllOrders)
	require.Empty(t, store.Gateway.Token())

	var stored client.UserInfo
	ok, err := cache.Get(client.CacheKeyUserInfo, &stored)
	require.NoError(t, err)
	require.False(t, ok, "logout drops the session cache slot")
}

func TestResetOrdersKeepsDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Order{ID: 1, IsPaid: true})
	})
	mux.HandleFunc("/orders/myorders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Order{{ID: 1}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	orders := client.NewOrderSlice(client.NewGateway(srv.URL))
	ctx := context.Background()
	require.NoError(t, orders.GetDetails(ctx, 1))
	require.NoError(t, orders.GetMine(ctx))

	orders.ResetOrders()

	st := orders.State()
	require.Empty(t, st.MyOrders)
	require.NotNil(t, st.OrderDetails, "reset clears collections only")
	require.True(t, st.OrderDetails.IsPaid)
}
