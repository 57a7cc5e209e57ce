package providers

import (
	"net/http"
	"warboard/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Mount(mux *http.ServeMux)
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) handle(method, url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Method:  method,
		Handler: methodHandler(method, handler),
	})
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.handle(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.handle(http.MethodPost, url, handler)
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Mount registers every route on mux. Routes share a path only if they
// differ by method, in which case they are dispatched together.
func (rp *RouterProvider) Mount(mux *http.ServeMux) {
	byPath := make(map[string]map[string]http.Handler)
	order := make([]string, 0, len(rp.routes))
	for _, route := range rp.routes {
		if _, ok := byPath[route.Url]; !ok {
			byPath[route.Url] = make(map[string]http.Handler)
			order = append(order, route.Url)
		}
		byPath[route.Url][route.Method] = route.Handler
	}

	for _, url := range order {
		handlers := byPath[url]
		if len(handlers) == 1 {
			for _, h := range handlers {
				mux.Handle(url, h)
			}
			continue
		}
		mux.Handle(url, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h, ok := handlers[r.Method]
			if !ok {
				http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
				return
			}
			h.ServeHTTP(w, r)
		}))
	}
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
