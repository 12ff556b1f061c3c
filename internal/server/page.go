package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/Xunop/e-library/internal/controller"
	"github.com/Xunop/e-library/internal/http/request"
	"github.com/Xunop/e-library/internal/http/response"
	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/model"
	"github.com/Xunop/e-library/internal/session"
	"github.com/Xunop/e-library/internal/web"
)

// sessionIDKey holds the session id inside the signed cookie.
const sessionIDKey = "id"

// pageHandler turns each browser request into one render pass.
type pageHandler struct {
	controller *controller.Controller
	sessions   *session.Manager
	cookies    sessions.Store
	renderer   *web.Renderer
}

func (h *pageHandler) routes(router *mux.Router) {
	router.HandleFunc("/", h.index).Methods(http.MethodGet).Name("index")
	router.HandleFunc("/books", h.addBook).Methods(http.MethodPost).Name("addBook")
	router.HandleFunc("/books/{id:[0-9]+}/click", h.clickBook).Methods(http.MethodPost).Name("clickBook")
	router.HandleFunc("/session/reset", h.resetSession).Methods(http.MethodPost).Name("resetSession")
}

func (h *pageHandler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, controller.Event{Term: request.QueryStringParam(r, "q", "")})
}

func (h *pageHandler) clickBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	h.render(w, r, controller.Event{Term: r.FormValue("q"), Click: &id})
}

func (h *pageHandler) addBook(w http.ResponseWriter, r *http.Request) {
	submit := &model.BookCreate{
		Title:       request.FormStringParam(r, "title"),
		Author:      request.FormStringParam(r, "author"),
		Language:    request.FormStringParam(r, "language"),
		Description: request.FormStringParam(r, "description"),
		Link:        request.FormStringParam(r, "link"),
	}
	h.render(w, r, controller.Event{Term: r.FormValue("q"), Submit: submit})
}

func (h *pageHandler) resetSession(w http.ResponseWriter, r *http.Request) {
	cookie, _ := h.cookies.Get(r, session.CookieName)
	if id, ok := cookie.Values[sessionIDKey].(string); ok {
		h.sessions.Delete(id)
	}
	delete(cookie.Values, sessionIDKey)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		response.HTMLServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *pageHandler) render(w http.ResponseWriter, r *http.Request, ev controller.Event) {
	sess, err := h.session(w, r)
	if err != nil {
		response.HTMLServerError(w, r, err)
		return
	}

	view, err := h.controller.Render(r.Context(), sess, ev)
	if err != nil {
		response.HTMLServerError(w, r, err)
		return
	}

	body, err := h.renderer.Page(view)
	if err != nil {
		response.HTMLServerError(w, r, err)
		return
	}
	response.HTML(w, r, body)
}

// session returns the caller's session, starting one and setting the cookie
// when the request carries none, an unknown id or a cookie that fails to
// decode.
func (h *pageHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	cookie, err := h.cookies.Get(r, session.CookieName)
	if err != nil {
		log.Debug("Discarding undecodable session cookie", zap.String("client_ip", request.ClientIP(r)), zap.Error(err))
	}

	id, _ := cookie.Values[sessionIDKey].(string)
	sess, created := h.sessions.GetOrCreate(id)
	if created {
		cookie.Values[sessionIDKey] = sess.ID
		if err := cookie.Save(r, w); err != nil {
			return nil, err
		}
	}
	return sess, nil
}
