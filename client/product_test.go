package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/offanish/proshop/client"
	"github.com/offanish/proshop/models"
)

func TestProductListPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "phone", r.URL.Query().Get("keyword"))
		require.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"products": []models.Product{{ID: 11, Name: "Phone 11"}, {ID: 12, Name: "Phone 12"}},
			"page":     2,
			"pages":    2,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	list := client.NewProductListSlice(client.NewGateway(srv.URL))
	require.NoError(t, list.List(context.Background(), "phone", 2))

	st := list.State()
	require.False(t, st.Loading)
	require.Len(t, st.Products, 2)
	require.Equal(t, 2, st.Page)
	require.Equal(t, 2, st.Pages)
}

func TestProductListDeleteTriggersRelist(t *testing.T) {
	var listCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"products": []models.Product{{ID: 2, Name: "Kept"}},
			"page":     1,
			"pages":    1,
		})
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	list := client.NewProductListSlice(client.NewGateway(srv.URL))
	require.NoError(t, list.Delete(context.Background(), 1))

	require.Equal(t, int32(1), listCalls.Load(), "delete re-lists instead of splicing locally")
	st := list.State()
	require.Len(t, st.Products, 1)
	require.Equal(t, "Kept", st.Products[0].Name)
}

func TestProductListCreateStoresPlaceholder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Product{ID: 9, Name: "Sample name"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	list := client.NewProductListSlice(client.NewGateway(srv.URL))
	require.NoError(t, list.Create(context.Background()))

	st := list.State()
	require.NotNil(t, st.CreatedProduct)
	require.Equal(t, uint(9), st.CreatedProduct.ID)
}

func TestProductListCreateReviewSetsSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/3/reviews", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Review added"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	list := client.NewProductListSlice(client.NewGateway(srv.URL))
	require.NoError(t, list.CreateReview(context.Background(), 3, 5, "great"))
	require.True(t, list.State().Success)

	list.ResetStatus()
	require.False(t, list.State().Success)
}

func TestProductDetailsGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/5", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Product{
			ID: 5, Name: "Camera",
			Reviews: []models.Review{{Rating: 4, Comment: "solid"}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	details := client.NewProductDetailsSlice(client.NewGateway(srv.URL))
	require.NoError(t, details.Get(context.Background(), 5))

	st := details.State()
	require.Equal(t, "Camera", st.Product.Name)
	require.Len(t, st.Product.Reviews, 1)
}

func TestProductDetailsErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// non-2xx with no structured message
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	details := client.NewProductDetailsSlice(client.NewGateway(srv.URL))
	err := details.Get(context.Background(), 5)
	require.Error(t, err)
	require.Equal(t, "request failed with status 502", details.State().Error)
}
