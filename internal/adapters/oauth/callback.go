package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

const callbackSuccessPage = `<!DOCTYPE html>
<html><body style="font-family: sans-serif; text-align: center; margin-top: 4em">
<h2>Login complete</h2><p>You can close this tab and return to the terminal.</p>
</body></html>`

const callbackErrorPage = `<!DOCTYPE html>
<html><body style="font-family: sans-serif; text-align: center; margin-top: 4em">
<h2>Login failed</h2><p>%s: %s</p>
</body></html>`

// callbackResult carries the query parameters of one OAuth callback.
type callbackResult struct {
	code    string
	state   string
	errCode string
	errDesc string
}

// callbackServer is a temporary loopback HTTP server that receives a
// single OAuth authorization callback and then shuts down.
type callbackServer struct {
	listener net.Listener
	server   *http.Server
	results  chan callbackResult
	failures chan error
	once     sync.Once
	baseURL  string
}

// newCallbackServer starts listening on a random 127.0.0.1 port.
func newCallbackServer() (*callbackServer, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listening on loopback: %w", err)
	}

	s := &callbackServer{
		listener: listener,
		results:  make(chan callbackResult, 1),
		failures: make(chan error, 1),
		baseURL:  fmt.Sprintf("http://%s", listener.Addr()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handle)
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.failures <- err:
			default:
			}
		}
	}()

	return s, nil
}

// redirectURI returns the URI to register as the authorization redirect.
func (s *callbackServer) redirectURI() string {
	return s.baseURL + "/callback"
}

// wait blocks until the callback arrives, the server fails, or ctx is
// cancelled. There is deliberately no timeout of its own: the operator
// may take as long as they need in the browser.
func (s *callbackServer) wait(ctx context.Context) (callbackResult, error) {
	select {
	case result := <-s.results:
		return result, nil
	case err := <-s.failures:
		return callbackResult{}, err
	case <-ctx.Done():
		return callbackResult{}, ctx.Err()
	}
}

func (s *callbackServer) handle(w http.ResponseWriter, r *http.Request) {
	var first bool
	s.once.Do(func() {
		first = true
		s.process(w, r)
	})
	if !first {
		http.Error(w, "callback already processed", http.StatusBadRequest)
	}
}

func (s *callbackServer) process(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result := callbackResult{
		code:    query.Get("code"),
		state:   query.Get("state"),
		errCode: query.Get("error"),
		errDesc: query.Get("error_description"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if result.errCode != "" {
		fmt.Fprintf(w, callbackErrorPage, result.errCode, result.errDesc)
	} else {
		fmt.Fprint(w, callbackSuccessPage)
	}

	s.results <- result
}

// stop shuts the server down. Safe to call more than once.
func (s *callbackServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(ctx)
	_ = s.listener.Close()
}
