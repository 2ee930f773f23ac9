package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"attrilens/domain/attrition"
	"attrilens/domain/core"
	"attrilens/domain/dataset"
	"attrilens/internal/aggregate"
	"attrilens/internal/ingest"
	"attrilens/ports"

	"golang.org/x/sync/errgroup"
)

// KeyDriverColumns are the categorical factors of the key-driver view.
var KeyDriverColumns = []string{
	attrition.ColOverTime,
	attrition.ColBusinessTravel,
	attrition.ColWorkLifeBalance,
}

// CorrelationColumns are the numeric factors of the correlation heatmap.
var CorrelationColumns = []string{
	attrition.ColAge,
	attrition.ColMonthlyIncome,
	attrition.ColYearsAtCompany,
	attrition.ColYearsSinceLastPromotion,
	attrition.ColDistanceFromHome,
	attrition.ColJobLevel,
	attrition.ColTotalWorkingYears,
	attrition.ColJobSatisfaction,
	attrition.ColWorkLifeBalance,
}

// DashboardData is the full payload behind the main dashboard: every chart's
// summary table, computed over one filtered view of the dataset.
type DashboardData struct {
	Overview          attrition.Overview                  `json:"overview"`
	Departments       []attrition.GroupSummary            `json:"departments"`
	AgeBands          []attrition.GroupSummary            `json:"age_bands"`
	TenureBands       []attrition.GroupSummary            `json:"tenure_bands"`
	Drivers           map[string][]attrition.GroupSummary `json:"drivers"`
	LevelSatisfaction *attrition.RateMatrix               `json:"level_satisfaction"`
	GenderMarital     []attrition.PathCount               `json:"gender_marital"`
	IncomeByOutcome   []attrition.BoxStats                `json:"income_by_outcome"`
	Correlation       *attrition.CorrelationMatrix        `json:"correlation"`
	// OverTimeRatio is how many times higher the overtime group's rate is
	// than the non-overtime group's; nil when the baseline rate is zero.
	OverTimeRatio *float64 `json:"overtime_ratio,omitempty"`
}

// SalesDiveData is the sales-department deep dive: the ten factor views of
// the sales dashboard over the Department == "Sales" subset.
type SalesDiveData struct {
	Overview        attrition.Overview       `json:"overview"`
	OverTime        []attrition.GroupSummary `json:"overtime"`
	BusinessTravel  []attrition.GroupSummary `json:"business_travel"`
	JobSatisfaction []attrition.GroupSummary `json:"job_satisfaction"`
	TenureBands     []attrition.GroupSummary `json:"tenure_bands"`
	PromotionBands  []attrition.GroupSummary `json:"promotion_bands"`
	WorkLifeBalance []attrition.GroupSummary `json:"work_life_balance"`
	JobLevel        []attrition.GroupSummary `json:"job_level"`
	IncomeBox       []attrition.BoxStats     `json:"income_box"`
	DistanceBox     []attrition.BoxStats     `json:"distance_box"`
	WorkingYearsBox []attrition.BoxStats     `json:"working_years_box"`
}

// EarlyCareerData is the deep dive over employees with at most three years
// at the company.
type EarlyCareerData struct {
	Overview        attrition.Overview       `json:"overview"`
	JobSatisfaction []attrition.GroupSummary `json:"job_satisfaction"`
	IncomeBox       []attrition.BoxStats     `json:"income_box"`
}

// SearchResult is a page of raw rows matching a free-text query.
type SearchResult struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Total   int                 `json:"total"`
}

// DashboardService loads the dataset once, then serves every dashboard view
// as a pure aggregation over (possibly filtered) copies of it. Views are
// independent, so each request computes them concurrently.
type DashboardService struct {
	loader     *ingest.Loader
	engine     *aggregate.Engine
	catalog    ports.CatalogRepository // optional; nil disables load history
	sourcePath string

	recordOnce sync.Once
}

// NewDashboardService creates a dashboard service over one source file.
func NewDashboardService(loader *ingest.Loader, engine *aggregate.Engine,
	catalog ports.CatalogRepository, sourcePath string) *DashboardService {
	return &DashboardService{
		loader:     loader,
		engine:     engine,
		catalog:    catalog,
		sourcePath: sourcePath,
	}
}

// Dataset returns the normalized dataset, loading and cataloging it on
// first use.
func (s *DashboardService) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := s.loader.Load(s.sourcePath)
	if err != nil {
		return nil, err
	}
	s.recordOnce.Do(func() { s.recordLoad(ctx, ds) })
	return ds, nil
}

func (s *DashboardService) recordLoad(ctx context.Context, ds *dataset.Dataset) {
	if s.catalog == nil {
		return
	}
	entry := &ports.CatalogEntry{
		ID:          core.DatasetID(core.NewID()),
		SourcePath:  s.sourcePath,
		RecordCount: ds.Len(),
		FieldCount:  len(ds.Columns()),
		Columns:     ds.Columns(),
		LoadedAt:    time.Now().UTC(),
	}
	if err := s.catalog.Record(ctx, entry); err != nil {
		log.Printf("[DashboardService] failed to record dataset load: %v", err)
	}
}

// Reload drops the cached dataset so the next request re-reads the source.
func (s *DashboardService) Reload() {
	s.loader.Invalidate(s.sourcePath)
	s.recordOnce = sync.Once{}
}

// Dashboard computes the full dashboard payload for one filter. A filter
// matching no rows yields an empty-result error the shells turn into a
// notice rather than a failure.
func (s *DashboardService) Dashboard(ctx context.Context, filter dataset.Filter) (*DashboardData, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	view := filter.Apply(ds)
	if view.Len() == 0 {
		return nil, fmt.Errorf("%w: dashboard filter", core.ErrEmptyResult)
	}

	data := &DashboardData{Drivers: make(map[string][]attrition.GroupSummary, len(KeyDriverColumns))}
	var driversMu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Overview, err = s.engine.Overview(view)
		return err
	})
	g.Go(func() (err error) {
		data.Departments, err = s.engine.Summarize(view, attrition.ColDepartment)
		return err
	})
	g.Go(func() (err error) {
		data.AgeBands, err = s.engine.Summarize(view, attrition.ColAgeBand)
		return err
	})
	g.Go(func() (err error) {
		data.TenureBands, err = s.engine.Summarize(view, attrition.ColTenureBand)
		return err
	})
	for _, driver := range KeyDriverColumns {
		g.Go(func() error {
			summary, err := s.engine.Summarize(view, driver)
			if err != nil {
				return err
			}
			driversMu.Lock()
			data.Drivers[driver] = summary
			driversMu.Unlock()
			return nil
		})
	}
	g.Go(func() (err error) {
		data.LevelSatisfaction, err = s.engine.Summarize2D(view,
			attrition.ColJobLevel, attrition.ColJobSatisfaction)
		return err
	})
	g.Go(func() (err error) {
		data.GenderMarital, err = s.engine.CountPath(view,
			attrition.ColGender, attrition.ColMaritalStatus, attrition.ColAttrition)
		return err
	})
	g.Go(func() (err error) {
		data.IncomeByOutcome, err = s.engine.BoxStats(view,
			attrition.ColMonthlyIncome, attrition.ColAttrition)
		return err
	})
	g.Go(func() (err error) {
		data.Correlation, err = s.engine.Correlation(view, CorrelationColumns)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.OverTimeRatio = OverTimeRatio(data.Drivers[attrition.ColOverTime])
	return data, nil
}

// SalesDeepDive computes the sales-department views over the full dataset,
// ignoring the interactive filter as the published dashboard does.
func (s *DashboardService) SalesDeepDive(ctx context.Context) (*SalesDiveData, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	view := dataset.NewFilter(dataset.Equal(attrition.ColDepartment, attrition.SalesDepartment)).Apply(ds)
	if view.Len() == 0 {
		return nil, fmt.Errorf("%w: no %s department rows", core.ErrEmptyResult, attrition.SalesDepartment)
	}

	data := &SalesDiveData{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Overview, err = s.engine.Overview(view)
		return err
	})
	summaries := []struct {
		key string
		dst *[]attrition.GroupSummary
	}{
		{attrition.ColOverTime, &data.OverTime},
		{attrition.ColBusinessTravel, &data.BusinessTravel},
		{attrition.ColJobSatisfaction, &data.JobSatisfaction},
		{attrition.ColTenureBand, &data.TenureBands},
		{attrition.ColPromotionBand, &data.PromotionBands},
		{attrition.ColWorkLifeBalance, &data.WorkLifeBalance},
		{attrition.ColJobLevel, &data.JobLevel},
	}
	for _, item := range summaries {
		g.Go(func() (err error) {
			*item.dst, err = s.engine.Summarize(view, item.key)
			return err
		})
	}
	boxes := []struct {
		column string
		dst    *[]attrition.BoxStats
	}{
		{attrition.ColMonthlyIncome, &data.IncomeBox},
		{attrition.ColDistanceFromHome, &data.DistanceBox},
		{attrition.ColTotalWorkingYears, &data.WorkingYearsBox},
	}
	for _, box := range boxes {
		g.Go(func() (err error) {
			*box.dst, err = s.engine.BoxStats(view, box.column, attrition.ColAttrition)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// EarlyCareerDeepDive computes the views over employees with at most three
// years at the company, applied on top of the interactive filter.
func (s *DashboardService) EarlyCareerDeepDive(ctx context.Context, filter dataset.Filter) (*EarlyCareerData, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	view := filter.
		With(dataset.AtMost(attrition.ColYearsAtCompany, attrition.EarlyCareerMaxYears)).
		Apply(ds)
	if view.Len() == 0 {
		return nil, fmt.Errorf("%w: no early-career rows", core.ErrEmptyResult)
	}

	data := &EarlyCareerData{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Overview, err = s.engine.Overview(view)
		return err
	})
	g.Go(func() (err error) {
		data.JobSatisfaction, err = s.engine.Summarize(view, attrition.ColJobSatisfaction)
		return err
	})
	g.Go(func() (err error) {
		data.IncomeBox, err = s.engine.BoxStats(view, attrition.ColMonthlyIncome, attrition.ColAttrition)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// Overview computes the headline metrics for one filtered view.
func (s *DashboardService) Overview(ctx context.Context, filter dataset.Filter) (attrition.Overview, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return attrition.Overview{}, err
	}
	return s.engine.Overview(filter.Apply(ds))
}

// Summary computes one grouped-rate table for one filtered view. An empty
// view yields an empty table, not an error.
func (s *DashboardService) Summary(ctx context.Context, filter dataset.Filter, key string) ([]attrition.GroupSummary, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Summarize(filter.Apply(ds), key)
}

// Matrix computes one two-dimensional rate matrix for one filtered view.
func (s *DashboardService) Matrix(ctx context.Context, filter dataset.Filter, rowKey, colKey string) (*attrition.RateMatrix, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Summarize2D(filter.Apply(ds), rowKey, colKey)
}

// Box computes per-group distribution stats for one filtered view.
func (s *DashboardService) Box(ctx context.Context, filter dataset.Filter, valueColumn, byColumn string) ([]attrition.BoxStats, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.BoxStats(filter.Apply(ds), valueColumn, byColumn)
}

// Sunburst computes the gender/marital-status/outcome hierarchy counts.
func (s *DashboardService) Sunburst(ctx context.Context, filter dataset.Filter) ([]attrition.PathCount, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.CountPath(filter.Apply(ds),
		attrition.ColGender, attrition.ColMaritalStatus, attrition.ColAttrition)
}

// Search returns up to limit raw rows matching the query within the
// filtered view. Zero matches is a valid result, not an error.
func (s *DashboardService) Search(ctx context.Context, filter dataset.Filter, query string, limit int) (*SearchResult, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	view := filter.Apply(ds).Search(query)

	result := &SearchResult{Columns: view.Columns(), Total: view.Len()}
	if limit <= 0 || limit > view.Len() {
		limit = view.Len()
	}
	result.Rows = make([]map[string]string, 0, limit)
	for i := 0; i < limit; i++ {
		result.Rows = append(result.Rows, view.Row(i))
	}
	return result, nil
}

// History lists recent dataset loads from the catalog.
func (s *DashboardService) History(ctx context.Context, limit int) ([]*ports.CatalogEntry, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.List(ctx, limit)
}

// OverTimeRatio derives the overtime-vs-baseline rate multiple from the
// OverTime summary. Returns nil when either group is missing or the
// baseline rate is zero.
func OverTimeRatio(summary []attrition.GroupSummary) *float64 {
	var yes, no *attrition.GroupSummary
	for i := range summary {
		switch summary[i].Key {
		case "Yes":
			yes = &summary[i]
		case "No":
			no = &summary[i]
		}
	}
	if yes == nil || no == nil || no.Rate == 0 {
		return nil
	}
	ratio := yes.Rate / no.Rate
	return &ratio
}
