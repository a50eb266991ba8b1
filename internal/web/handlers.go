package web

import (
	"net/http"

	"github.com/ironicbadger/ktz-usa-stamps/internal/detail"
	"github.com/ironicbadger/ktz-usa-stamps/internal/filter"
	"github.com/ironicbadger/ktz-usa-stamps/internal/mapview"
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
)

// sortOption is one entry of the sort select.
type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{filter.SortName, "Name"},
	{filter.SortVisitDate, "Most recent visit"},
	{filter.SortRating, "Rating"},
	{filter.SortState, "State"},
}

// filterForm carries the filter controls shared by the list and map pages.
type filterForm struct {
	Action       string
	Criteria     filter.Criteria
	Regions      []string
	Types        []string
	StateOptions []filter.StateOption
	SortOptions  []sortOption
	Active       bool
}

func newFilterForm(action string, pg *passport.Page, c filter.Criteria) filterForm {
	return filterForm{
		Action:       action,
		Criteria:     c,
		Regions:      filter.Regions(pg.Parks),
		Types:        filter.Types(pg.Parks),
		StateOptions: filter.StateOptions(pg.Parks),
		SortOptions:  sortOptions,
		Active:       c.Active(),
	}
}

type listData struct {
	Title    string
	Stats    passport.Stats
	Parks    []*passport.EnrichedPark
	Carousel []passport.CarouselItem
	Filters  filterForm
}

type mapData struct {
	Title   string
	View    mapview.View
	Filters filterForm
}

type detailData struct {
	Title string
	View  detail.View
}

type errorData struct {
	Title   string
	Message string
}

// handleList renders the park list with stats, filters and the carousel.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	pg, err := s.load(r.Context())
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	c := filter.FromQuery(r.URL.Query())
	s.render(w, http.StatusOK, "list.html", listData{
		Title:    "Passport",
		Stats:    pg.Stats,
		Parks:    filter.Apply(pg.Parks, c),
		Carousel: passport.CarouselItems(pg.Parks, s.newRand()),
		Filters:  newFilterForm("/", pg, c),
	})
}

// handleMap renders the map page. Markers are embedded in the page.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	pg, err := s.load(r.Context())
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	c := filter.FromQuery(r.URL.Query())
	s.render(w, http.StatusOK, "map.html", mapData{
		Title:   "Map",
		View:    mapview.Build(filter.Apply(pg.Parks, c), c.Active()),
		Filters: newFilterForm("/map", pg, c),
	})
}

// handleDetail renders the single-park page for /park?id=.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	pg, err := s.load(r.Context())
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	view := detail.Build(pg, r.URL.Query().Get("id"))
	switch view.Status {
	case detail.StatusMissingID:
		s.render(w, http.StatusBadRequest, "error.html", errorData{Title: "Park", Message: view.Status.Message()})
		return
	case detail.StatusNotFound:
		s.render(w, http.StatusNotFound, "error.html", errorData{Title: "Park", Message: view.Status.Message()})
		return
	}

	if s.snippets != nil {
		s.snippets.Prefetch(r.Context(), view.Entries)
	}

	s.render(w, http.StatusOK, "park.html", detailData{
		Title: view.Park.Name,
		View:  view,
	})
}
