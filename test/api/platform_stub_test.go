package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/vintnersrow/storefront/internal/platform"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

// platformStub is an in-memory stand-in for the hosted commerce platform,
// enough for the cart endpoints and the sync/purge admin calls.
type platformStub struct {
	mu       sync.Mutex
	carts    map[string]*platform.Cart
	products map[string]platform.Product
}

func newPlatformStub() http.Handler {
	stub := &platformStub{
		carts:    map[string]*platform.Cart{},
		products: map[string]platform.Product{},
	}

	router := chi.NewRouter()

	router.Post("/carts.json", stub.createCart)
	router.Get("/carts/{id}.json", stub.getCart)
	router.Post("/carts/{id}/items.json", stub.addCartItem)

	router.Post("/admin/products.json", stub.createProduct)
	router.Delete("/admin/products/{id}.json", stub.deleteProduct)
	router.Get("/admin/products.json", stub.listProducts)
	router.Get("/admin/products/count.json", stub.countProducts)

	return router
}

func (s *platformStub) createCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := &platform.Cart{
		ID:       uuid.NewString(),
		Items:    []platform.CartItem{},
		Subtotal: "0.00",
	}
	s.carts[cart.ID] = cart

	writeJSON(w, http.StatusCreated, map[string]any{"cart": cart})
}

func (s *platformStub) getCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, found := s.carts[chi.URLParam(r, "id")]
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (s *platformStub) addCartItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, found := s.carts[chi.URLParam(r, "id")]
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var envelope struct {
		Item platform.CartItemInput `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cart.Items = append(cart.Items, platform.CartItem{
		ProductID: envelope.Item.ProductID,
		VariantID: envelope.Item.VariantID,
		Quantity:  envelope.Item.Quantity,
		Price:     "10.00",
	})

	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (s *platformStub) createProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var envelope struct {
		Product platform.Product `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	envelope.Product.ID = "plat-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	s.products[envelope.Product.ID] = envelope.Product

	writeJSON(w, http.StatusCreated, map[string]any{"product": envelope.Product})
}

func (s *platformStub) deleteProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, found := s.products[id]; !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	delete(s.products, id)
	w.WriteHeader(http.StatusOK)
}

func (s *platformStub) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]platform.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *platformStub) countProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]int{"count": len(s.products)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
