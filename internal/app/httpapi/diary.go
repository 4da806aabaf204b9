package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/webtriad/webtriad/internal/app"
	"github.com/webtriad/webtriad/internal/errors"
	"github.com/webtriad/webtriad/pkg/logger"
)

// diaryHandler serves the server-rendered food diary pages.
type diaryHandler struct {
	app *app.Application
	log *logger.Logger
}

// NewDiaryRouter returns the food diary routes.
func NewDiaryRouter(application *app.Application, log *logger.Logger) *mux.Router {
	if log == nil {
		log = logger.NewDefault("diary")
	}
	h := &diaryHandler{app: application, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/", h.home).Methods(http.MethodGet)
	r.HandleFunc("/", h.addDay).Methods(http.MethodPost)
	r.HandleFunc("/view/{date:[0-9]{8}}", h.viewDay).Methods(http.MethodGet)
	r.HandleFunc("/view/{date:[0-9]{8}}", h.addFoodToDay).Methods(http.MethodPost)
	r.HandleFunc("/food", h.foods).Methods(http.MethodGet)
	r.HandleFunc("/food", h.addFood).Methods(http.MethodPost)
	return r
}

func (h *diaryHandler) home(w http.ResponseWriter, r *http.Request) {
	days, err := h.app.Diary.ListDays(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "diary_home.html", map[string]interface{}{
		"Days": days,
	})
}

func (h *diaryHandler) addDay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	if _, err := h.app.Diary.RecordDay(r.Context(), r.PostFormValue("date")); err != nil {
		renderError(w, h.log, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *diaryHandler) viewDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	detail, err := h.app.Diary.ViewDay(r.Context(), date)
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	foods, err := h.app.Diary.ListFoods(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "diary_day.html", map[string]interface{}{
		"Detail":   detail,
		"AllFoods": foods,
	})
}

func (h *diaryHandler) addFoodToDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	foodID, err := strconv.ParseInt(r.PostFormValue("food-select"), 10, 64)
	if err != nil {
		renderError(w, h.log, errors.BadRequest("food is required"))
		return
	}
	if err := h.app.Diary.AddFoodToDay(r.Context(), date, foodID); err != nil {
		renderError(w, h.log, err)
		return
	}
	http.Redirect(w, r, "/view/"+date, http.StatusSeeOther)
}

func (h *diaryHandler) foods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.app.Diary.ListFoods(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	render(w, h.log, http.StatusOK, "diary_foods.html", map[string]interface{}{
		"Foods": foods,
	})
}

func (h *diaryHandler) addFood(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, h.log, errors.BadRequest("invalid form"))
		return
	}
	protein, err := strconv.Atoi(r.PostFormValue("protein"))
	if err != nil {
		renderError(w, h.log, errors.BadRequest("protein must be a number"))
		return
	}
	carbohydrates, err := strconv.Atoi(r.PostFormValue("carbohydrates"))
	if err != nil {
		renderError(w, h.log, errors.BadRequest("carbohydrates must be a number"))
		return
	}
	fat, err := strconv.Atoi(r.PostFormValue("fat"))
	if err != nil {
		renderError(w, h.log, errors.BadRequest("fat must be a number"))
		return
	}

	if _, err := h.app.Diary.CreateFood(r.Context(), r.PostFormValue("food-name"), protein, carbohydrates, fat); err != nil {
		renderError(w, h.log, err)
		return
	}
	http.Redirect(w, r, "/food", http.StatusSeeOther)
}
