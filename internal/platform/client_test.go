package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, "test-token", 1)
}

func Test_CreateProduct_Sends_Access_Token_And_Unwraps_Envelope(t *testing.T) {
	// Arrange
	var receivedToken string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		receivedToken = r.Header.Get("X-Platform-Access-Token")

		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/products.json", r.URL.Path)

		var envelope productEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		require.Equal(t, "2019 Blanc de Blancs", envelope.Product.Title)

		envelope.Product.ID = "plat-42"
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(envelope))
	})

	// Act
	created, err := client.CreateProduct(context.Background(), Product{Title: "2019 Blanc de Blancs"})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "test-token", receivedToken)
	require.Equal(t, "plat-42", created.ID)
}

func Test_CreateProduct_Returns_APIError_For_Non_2xx(t *testing.T) {
	// Arrange
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"title":["can't be blank"]}}`))
	})

	// Act
	_, err := client.CreateProduct(context.Background(), Product{})

	// Assert
	require.Error(t, err)

	var apiErr APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "can't be blank")
}

func Test_DeleteProduct_Tolerates_404(t *testing.T) {
	// Arrange
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/products/plat-7.json", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	// Act
	err := client.DeleteProduct(context.Background(), "plat-7")

	// Assert
	require.NoError(t, err)
}

func Test_GetCart_Maps_404_To_ErrNotFound(t *testing.T) {
	// Arrange
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// Act
	_, err := client.GetCart(context.Background(), "missing-cart")

	// Assert
	require.ErrorIs(t, err, ErrNotFound)
}

func Test_CountProducts_Reads_Count_Envelope(t *testing.T) {
	// Arrange
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/products/count.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"count": 17}`))
	})

	// Act
	count, err := client.CountProducts(context.Background())

	// Assert
	require.NoError(t, err)
	require.Equal(t, 17, count)
}

func Test_ListProducts_Passes_Limit_And_Page(t *testing.T) {
	// Arrange
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		require.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"products": [{"id": "plat-1"}, {"id": "plat-2"}]}`))
	})

	// Act
	products, err := client.ListProducts(context.Background(), 50, 1)

	// Assert
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "plat-1", products[0].ID)
}

func Test_AddCartItem_Posts_Item_Envelope(t *testing.T) {
	// Arrange
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carts/cart-1/items.json", r.URL.Path)

		var envelope cartItemEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		require.Equal(t, 2, envelope.Item.Quantity)

		_, _ = w.Write([]byte(`{"cart": {"id": "cart-1", "items": [{"product_id": "plat-1", "quantity": 2}], "subtotal": "119.00"}}`))
	})

	// Act
	cart, err := client.AddCartItem(context.Background(), "cart-1", CartItemInput{
		ProductID: "plat-1",
		VariantID: "var-1",
		Quantity:  2,
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "cart-1", cart.ID)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "119.00", cart.Subtotal)
}
