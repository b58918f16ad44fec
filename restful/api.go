package restful

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/s4mli/umbral/logging"
	"golang.org/x/net/netutil"
)

const (
	GET    = "GET"
	PUT    = "PUT"
	POST   = "POST"
	DELETE = "DELETE"
)

type Request struct {
	Header http.Header
	Form   url.Values
	Vars   map[string]string
	Body   interface{}
}

// StatusError lets a resource pick the reply code instead of 500.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return e.Err.Error() }
func (e *StatusError) Unwrap() error { return e.Err }

type getSupported interface {
	Get(*Request) (interface{}, error)
}

type postSupported interface {
	Post(*Request) (interface{}, error)
}

type putSupported interface {
	Put(*Request) (interface{}, error)
}

type deleteSupported interface {
	Delete(*Request) (interface{}, error)
}

type API struct {
	router *mux.Router
	logger logging.Logger
	mu     sync.Mutex
	server *http.Server
}

func (api *API) requestFrom(r *http.Request) (*Request, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	var body interface{}
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()
	if err := decoder.Decode(&body); err != nil {
		return &Request{r.Header, r.Form, mux.Vars(r), nil}, nil
	}
	return &Request{r.Header, r.Form, mux.Vars(r), body}, nil
}

func (api *API) handlerFor(resource interface{}, method string) func(*Request) (interface{}, error) {
	switch method {
	case GET:
		if r, ok := resource.(getSupported); ok {
			return r.Get
		}
	case PUT:
		if r, ok := resource.(putSupported); ok {
			return r.Put
		}
	case POST:
		if r, ok := resource.(postSupported); ok {
			return r.Post
		}
	case DELETE:
		if r, ok := resource.(deleteSupported); ok {
			return r.Delete
		}
	}
	return nil
}

func (api *API) replyWith(rw http.ResponseWriter, code int, data []byte, err error) {
	rw.WriteHeader(code)
	if err != nil {
		rw.Write([]byte(err.Error()))
	} else {
		rw.Write(data)
	}
}

func (api *API) requestHandler(resource interface{}) http.HandlerFunc {
	return func(rw http.ResponseWriter, request *http.Request) {
		start := time.Now()
		message, err := api.requestFrom(request)
		if err != nil {
			defer api.logger.Debugf("%s %s %v", request.Method, request.RequestURI, time.Since(start))
			api.replyWith(rw, http.StatusBadRequest, nil, err)
			return
		}
		defer api.logger.Debugf("%s %s \n\tForm: %+v\n\tBody: %+v\n\tCost: %+v", request.Method,
			request.RequestURI, message.Form, message.Body, time.Since(start))
		handler := api.handlerFor(resource, request.Method)
		if handler == nil {
			api.replyWith(rw, http.StatusMethodNotAllowed, nil, nil)
			return
		}
		data, e := handler(message)
		if e != nil {
			code := http.StatusInternalServerError
			if se, ok := e.(*StatusError); ok {
				code = se.Code
			}
			api.replyWith(rw, code, nil, e)
			return
		}
		content, er := json.MarshalIndent(data, "", "  ")
		if er != nil {
			api.replyWith(rw, http.StatusInternalServerError, nil, er)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		api.replyWith(rw, http.StatusOK, content, nil)
	}
}

func (api *API) RegisterResource(resource interface{}, paths ...string) *API {
	for _, path := range paths {
		api.router.HandleFunc(path, api.requestHandler(resource))
	}
	return api
}

func (api *API) ServeHTTP(rw http.ResponseWriter, r *http.Request) { api.router.ServeHTTP(rw, r) }

// Start blocks serving on port with at most maxConns connections open at once.
func (api *API) Start(port, maxConns int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		api.logger.Error(err)
		return err
	}
	if maxConns > 0 {
		ln = netutil.LimitListener(ln, maxConns)
	}
	s := &http.Server{Handler: api, ReadHeaderTimeout: 5 * time.Second}
	api.mu.Lock()
	api.server = s
	api.mu.Unlock()

	api.logger.Infof("listening on port: %d", port)
	if err := s.Serve(ln); err != nil && err != http.ErrServerClosed {
		api.logger.Error(err)
		return err
	}
	return nil
}

func (api *API) Name() string { return "restful" }

func (api *API) Stop() {
	api.mu.Lock()
	s := api.server
	api.mu.Unlock()
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		api.logger.Warnf("shutdown: %s", err.Error())
	}
}

func NewAPI(logger logging.Logger) *API {
	if logger == nil {
		logger = logging.GetLogger(" < restful > ")
	}
	return &API{router: mux.NewRouter(), logger: logger}
}
