package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/webtriad/webtriad/internal/app"
	"github.com/webtriad/webtriad/internal/app/domain/qna"
	"github.com/webtriad/webtriad/internal/app/session"
	"github.com/webtriad/webtriad/internal/errors"
	"github.com/webtriad/webtriad/pkg/logger"
)

// qnaHandler serves the server-rendered question and answer pages.
type qnaHandler struct {
	app *app.Application
	log *logger.Logger
}

// NewQnARouter returns the Q&A routes.
func NewQnARouter(application *app.Application, log *logger.Logger) *mux.Router {
	if log == nil {
		log = logger.NewDefault("qna")
	}
	h := &qnaHandler{app: application, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/", h.home).Methods(http.MethodGet)
	r.HandleFunc("/register", h.registerForm).Methods(http.MethodGet)
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.loginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodGet)
	r.HandleFunc("/question/{id:[0-9]+}", h.question).Methods(http.MethodGet)
	r.HandleFunc("/ask", h.askForm).Methods(http.MethodGet)
	r.HandleFunc("/ask", h.ask).Methods(http.MethodPost)
	r.HandleFunc("/answer/{id:[0-9]+}", h.answerForm).Methods(http.MethodGet)
	r.HandleFunc("/answer/{id:[0-9]+}", h.answer).Methods(http.MethodPost)
	r.HandleFunc("/unanswered", h.unanswered).Methods(http.MethodGet)
	r.HandleFunc("/users", h.users).Methods(http.MethodGet)
	r.HandleFunc("/promote/{id:[0-9]+}", h.promote).Methods(http.MethodPost)
	return r
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// currentActor resolves the signed-in user from the session cookie. Returns
// nil when the request carries no valid session.
func (h *qnaHandler) currentActor(r *http.Request) *qna.Actor {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil
	}
	actor, err := h.app.Questions.ResolveActor(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return &actor
}

func (h *qnaHandler) home(w http.ResponseWriter, r *http.Request) {
	questions, err := h.app.Questions.Answered(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "qa_home.html", map[string]interface{}{
		"Actor":     h.currentActor(r),
		"Questions": questions,
	})
}

func (h *qnaHandler) registerForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.log, http.StatusOK, "qa_register.html", map[string]interface{}{})
}

func (h *qnaHandler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	_, token, err := h.app.Questions.Register(r.Context(), r.PostFormValue("name"), r.PostFormValue("password"))
	if err != nil {
		status := errors.HTTPStatus(err)
		message := "registration failed"
		if svcErr := errors.GetServiceError(err); svcErr != nil {
			message = svcErr.Message
		}
		render(w, h.log, status, "qa_register.html", map[string]interface{}{"Error": message})
		return
	}
	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *qnaHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.log, http.StatusOK, "qa_login.html", map[string]interface{}{})
}

func (h *qnaHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	_, token, err := h.app.Questions.Login(r.Context(), r.PostFormValue("name"), r.PostFormValue("password"))
	if err != nil {
		status := errors.HTTPStatus(err)
		message := "login failed"
		if svcErr := errors.GetServiceError(err); svcErr != nil {
			message = svcErr.Message
		}
		render(w, h.log, status, "qa_login.html", map[string]interface{}{"Error": message})
		return
	}
	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *qnaHandler) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *qnaHandler) question(w http.ResponseWriter, r *http.Request) {
	q, err := h.app.Questions.GetQuestion(r.Context(), pathID(r))
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	if !q.Answered() {
		renderError(w, h.log, errors.NotFound("question"))
		return
	}
	render(w, h.log, http.StatusOK, "qa_question.html", map[string]interface{}{
		"Question": q,
	})
}

func (h *qnaHandler) askForm(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	experts, err := h.app.Questions.Experts(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "qa_ask.html", map[string]interface{}{
		"Actor":   actor,
		"Experts": experts,
	})
}

func (h *qnaHandler) ask(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	expertID, err := strconv.ParseInt(r.PostFormValue("expert"), 10, 64)
	if err != nil {
		renderError(w, h.log, errors.BadRequest("expert is required"))
		return
	}
	if _, err := h.app.Questions.Ask(r.Context(), *actor, r.PostFormValue("question"), expertID); err != nil {
		renderError(w, h.log, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *qnaHandler) answerForm(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !actor.Expert {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	q, err := h.app.Questions.GetQuestion(r.Context(), pathID(r))
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "qa_answer.html", map[string]interface{}{
		"Actor":    actor,
		"Question": q,
	})
}

func (h *qnaHandler) answer(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !actor.Expert {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	if err := h.app.Questions.Answer(r.Context(), *actor, pathID(r), r.PostFormValue("answer")); err != nil {
		renderError(w, h.log, err)
		return
	}
	http.Redirect(w, r, "/unanswered", http.StatusSeeOther)
}

func (h *qnaHandler) unanswered(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !actor.Expert {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	questions, err := h.app.Questions.Unanswered(r.Context(), *actor)
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "qa_unanswered.html", map[string]interface{}{
		"Actor":     actor,
		"Questions": questions,
	})
}

func (h *qnaHandler) users(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !actor.Admin {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	users, err := h.app.Questions.Users(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "qa_users.html", map[string]interface{}{
		"Actor": actor,
		"Users": users,
	})
}

func (h *qnaHandler) promote(w http.ResponseWriter, r *http.Request) {
	actor := h.currentActor(r)
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !actor.Admin {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := h.app.Questions.Promote(r.Context(), pathID(r)); err != nil {
		renderError(w, h.log, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
