package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	asseterrors "go-worktrack/internal/asset/errors"
	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/counter"
	"go-worktrack/internal/shared/dateutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultPageSize = 10

type Service interface {
	Create(ctx context.Context, req AssetRequest) (AssetResponse, error)
	Update(ctx context.Context, id int64, req AssetRequest) (AssetResponse, error)
	List(ctx context.Context, q ListQuery, page int) ([]AssetResponse, int64, error)
	GetByID(ctx context.Context, id int64) (AssetResponse, error)
	Delete(ctx context.Context, id int64) error

	Allocate(ctx context.Context, actor contextutil.Actor, req AllocateRequest) (AllocationResponse, error)
	Return(ctx context.Context, actor contextutil.Actor, allocationID int64) error
	ListAllocations(ctx context.Context, q AllocationQuery) ([]AllocationResponse, error)
	History(ctx context.Context, employeeID int64) ([]AllocationResponse, error)
	MyAssets(ctx context.Context, actor contextutil.Actor) ([]MyAssetResponse, error)

	ReportIssue(ctx context.Context, actor contextutil.Actor, allocationID int64, req ReportIssueRequest) (IssueResponse, error)
	ResolveIssue(ctx context.Context, actor contextutil.Actor, issueID int64, req ResolveIssueRequest) (IssueResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counters counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("asset.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		now:      time.Now,
		logger:   l,
	}
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || price.IsNegative() {
		return decimal.Zero, asseterrors.ErrInvalidPrice
	}
	return price.Round(2), nil
}

func (s *service) Create(ctx context.Context, req AssetRequest) (AssetResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return AssetResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create asset begin tx failed", zap.Error(err))
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counters.WithTx(tx).GetNextValue(ctx, counter.TypeAssetTag)
	if err != nil {
		s.logger.Error("create asset next tag failed", zap.Error(err))
		return AssetResponse{}, err
	}

	now := s.now()
	a := &Asset{
		AssetTag:    fmt.Sprintf(tagFormat, seq),
		ItemName:    strings.TrimSpace(req.ItemName),
		Model:       strings.TrimSpace(req.Model),
		Price:       price,
		Description: strings.TrimSpace(req.Description),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
		s.logger.Error("create asset persist failed", zap.Error(err))
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create asset commit failed", zap.Error(err))
		return AssetResponse{}, err
	}

	s.logger.Info("create asset success", zap.Int64("asset_id", a.ID), zap.String("asset_tag", a.AssetTag))
	return mapAsset(*a), nil
}

func (s *service) Update(ctx context.Context, id int64, req AssetRequest) (AssetResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return AssetResponse{}, err
	}

	a := &Asset{
		ID:          id,
		ItemName:    strings.TrimSpace(req.ItemName),
		Model:       strings.TrimSpace(req.Model),
		Price:       price,
		Description: strings.TrimSpace(req.Description),
		UpdatedAt:   s.now(),
	}
	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Warn("update asset failed", zap.Int64("asset_id", id), zap.Error(err))
		return AssetResponse{}, mapRepositoryError(err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("update asset success", zap.Int64("asset_id", id))
	return mapAsset(*updated), nil
}

func (s *service) List(ctx context.Context, q ListQuery, page int) ([]AssetResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	assets, total, err := s.repo.FindAll(ctx, ListFilter{
		Status:   q.Status,
		Search:   strings.TrimSpace(q.Search),
		Page:     page,
		PageSize: DefaultPageSize,
	})
	if err != nil {
		s.logger.Error("list assets failed", zap.Error(err))
		return nil, 0, err
	}
	resp := make([]AssetResponse, len(assets))
	for i, a := range assets {
		resp[i] = mapAsset(a)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (AssetResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}
	return mapAsset(*a), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete asset failed", zap.Int64("asset_id", id), zap.Error(err))
		return mapDeleteError(err)
	}
	s.logger.Info("delete asset success", zap.Int64("asset_id", id))
	return nil
}

func (s *service) Allocate(ctx context.Context, actor contextutil.Actor, req AllocateRequest) (AllocationResponse, error) {
	s.logger.Debug("allocate asset requested",
		zap.Int64("asset_id", req.AssetID),
		zap.Int64("employee_id", req.EmployeeID),
		zap.Int64("allocated_by", actor.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("allocate asset begin tx failed", zap.Error(err))
		return AllocationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	n, err := qtx.MarkAllocated(ctx, req.AssetID)
	if err != nil {
		s.logger.Error("allocate asset update failed", zap.Error(err))
		return AllocationResponse{}, err
	}
	if n == 0 {
		if _, err := qtx.FindByID(ctx, req.AssetID); err != nil {
			return AllocationResponse{}, mapRepositoryError(err)
		}
		s.logger.Warn("allocate asset refused, not available", zap.Int64("asset_id", req.AssetID))
		return AllocationResponse{}, asseterrors.ErrAssetNotAvailable
	}

	allocatedBy := actor.EmployeeID
	alloc := &Allocation{
		AssetID:      req.AssetID,
		EmployeeID:   req.EmployeeID,
		AllocateDate: dateutil.StartOfDay(s.now()),
		Status:       AllocationActive,
		AllocatedBy:  &allocatedBy,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := qtx.CreateAllocation(ctx, alloc); err != nil {
		s.logger.Warn("allocate asset persist failed", zap.Error(err))
		return AllocationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("allocate asset commit failed", zap.Error(err))
		return AllocationResponse{}, err
	}

	s.logger.Info("allocate asset success",
		zap.Int64("allocation_id", alloc.ID),
		zap.Int64("asset_id", req.AssetID),
		zap.Int64("employee_id", req.EmployeeID),
	)
	return mapAllocation(AllocationRow{Allocation: *alloc}), nil
}

func (s *service) Return(ctx context.Context, actor contextutil.Actor, allocationID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("return asset begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	alloc, err := qtx.LockAllocation(ctx, allocationID)
	if err != nil {
		return mapAllocationError(err)
	}
	if alloc.Status != AllocationActive {
		s.logger.Warn("return asset refused, already returned", zap.Int64("allocation_id", allocationID))
		return asseterrors.ErrAllocationReturned
	}

	n, err := qtx.CloseAllocation(ctx, allocationID, dateutil.StartOfDay(s.now()))
	if err != nil {
		s.logger.Error("return asset close allocation failed", zap.Error(err))
		return err
	}
	if n == 0 {
		return asseterrors.ErrAllocationReturned
	}
	if err := qtx.MarkAvailable(ctx, alloc.AssetID); err != nil {
		s.logger.Error("return asset release failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("return asset commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("return asset success",
		zap.Int64("allocation_id", allocationID),
		zap.Int64("asset_id", alloc.AssetID),
		zap.Int64("returned_by", actor.EmployeeID),
	)
	return nil
}

func (s *service) ListAllocations(ctx context.Context, q AllocationQuery) ([]AllocationResponse, error) {
	rows, err := s.repo.FindAllocations(ctx, AllocationFilter{Status: q.Status})
	if err != nil {
		s.logger.Error("list allocations failed", zap.Error(err))
		return nil, err
	}
	issues, err := s.repo.FindIssues(ctx, allocationIDs(rows), IssueOpen)
	if err != nil {
		s.logger.Error("list allocation issues failed", zap.Error(err))
		return nil, err
	}

	byAlloc := groupIssues(issues)
	resp := make([]AllocationResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapAllocation(row)
		for _, is := range byAlloc[row.ID] {
			resp[i].OpenIssues = append(resp[i].OpenIssues, mapIssue(is))
		}
	}
	return resp, nil
}

func (s *service) History(ctx context.Context, employeeID int64) ([]AllocationResponse, error) {
	rows, err := s.repo.FindAllocations(ctx, AllocationFilter{EmployeeID: employeeID})
	if err != nil {
		s.logger.Error("allocation history failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	resp := make([]AllocationResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapAllocation(row)
	}
	return resp, nil
}

func (s *service) MyAssets(ctx context.Context, actor contextutil.Actor) ([]MyAssetResponse, error) {
	rows, err := s.repo.FindAllocations(ctx, AllocationFilter{EmployeeID: actor.EmployeeID, Status: AllocationActive})
	if err != nil {
		s.logger.Error("my assets failed", zap.Int64("employee_id", actor.EmployeeID), zap.Error(err))
		return nil, err
	}
	issues, err := s.repo.FindIssues(ctx, allocationIDs(rows), "")
	if err != nil {
		s.logger.Error("my asset issues failed", zap.Error(err))
		return nil, err
	}

	byAlloc := groupIssues(issues)
	resp := make([]MyAssetResponse, len(rows))
	for i, row := range rows {
		resp[i].AllocationResponse = mapAllocation(row)
		resp[i].Issues.Open = []IssueResponse{}
		resp[i].Issues.Resolved = []IssueResponse{}
		for _, is := range byAlloc[row.ID] {
			if is.Status == IssueResolved {
				resp[i].Issues.Resolved = append(resp[i].Issues.Resolved, mapIssue(is))
			} else {
				resp[i].Issues.Open = append(resp[i].Issues.Open, mapIssue(is))
			}
		}
	}
	return resp, nil
}

func (s *service) ReportIssue(ctx context.Context, actor contextutil.Actor, allocationID int64, req ReportIssueRequest) (IssueResponse, error) {
	text := strings.TrimSpace(req.Issue)
	if text == "" {
		return IssueResponse{}, apperror.RequiredField("Issue")
	}

	alloc, err := s.repo.FindAllocation(ctx, allocationID)
	if err != nil {
		return IssueResponse{}, mapAllocationError(err)
	}
	if alloc.EmployeeID != actor.EmployeeID {
		s.logger.Warn("report issue refused, foreign allocation",
			zap.Int64("allocation_id", allocationID),
			zap.Int64("employee_id", actor.EmployeeID),
		)
		return IssueResponse{}, asseterrors.ErrAllocationNotFound
	}
	if alloc.Status != AllocationActive {
		return IssueResponse{}, asseterrors.ErrAllocationInactive
	}

	issue := &Issue{
		AllocationID: allocationID,
		EmployeeID:   actor.EmployeeID,
		Issue:        text,
		Status:       IssueOpen,
		ReportedAt:   s.now(),
	}
	if err := s.repo.CreateIssue(ctx, issue); err != nil {
		s.logger.Error("report issue persist failed", zap.Error(err))
		return IssueResponse{}, mapIssueError(err)
	}

	s.logger.Info("report issue success", zap.Int64("issue_id", issue.ID), zap.Int64("allocation_id", allocationID))
	return mapIssue(*issue), nil
}

func (s *service) ResolveIssue(ctx context.Context, actor contextutil.Actor, issueID int64, req ResolveIssueRequest) (IssueResponse, error) {
	resolution := strings.TrimSpace(req.Resolution)
	if resolution == "" {
		return IssueResponse{}, apperror.RequiredField("Resolution")
	}

	n, err := s.repo.ResolveIssue(ctx, issueID, resolution, actor.EmployeeID, s.now())
	if err != nil {
		s.logger.Error("resolve issue failed", zap.Int64("issue_id", issueID), zap.Error(err))
		return IssueResponse{}, err
	}

	issue, err := s.repo.FindIssue(ctx, issueID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("resolve issue reload failed", zap.Error(err))
		}
		return IssueResponse{}, mapIssueError(err)
	}
	if n == 0 {
		s.logger.Warn("resolve issue refused, already resolved", zap.Int64("issue_id", issueID))
		return IssueResponse{}, asseterrors.ErrIssueResolved
	}

	s.logger.Info("resolve issue success", zap.Int64("issue_id", issueID), zap.Int64("resolved_by", actor.EmployeeID))
	return mapIssue(*issue), nil
}

func allocationIDs(rows []AllocationRow) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func groupIssues(issues []Issue) map[int64][]Issue {
	out := make(map[int64][]Issue)
	for _, is := range issues {
		out[is.AllocationID] = append(out[is.AllocationID], is)
	}
	return out
}

func mapAsset(a Asset) AssetResponse {
	return AssetResponse{
		ID:          a.ID,
		AssetTag:    a.AssetTag,
		ItemName:    a.ItemName,
		Model:       a.Model,
		Price:       a.Price.StringFixed(2),
		Description: a.Description,
		Status:      a.Status,
	}
}

func mapAllocation(row AllocationRow) AllocationResponse {
	return AllocationResponse{
		ID:           row.ID,
		AssetID:      row.AssetID,
		AssetTag:     row.AssetTag,
		ItemName:     row.ItemName,
		Model:        row.Model,
		EmployeeID:   row.EmployeeID,
		EmployeeName: strings.TrimSpace(row.FirstName + " " + row.LastName),
		AllocateDate: dateutil.Format(row.AllocateDate),
		ReturnedDate: dateutil.FormatPtr(row.ReturnedDate),
		Status:       row.Status,
		AllocatedBy:  row.AllocatedBy,
		Description:  row.Description,
	}
}

func mapIssue(i Issue) IssueResponse {
	resp := IssueResponse{
		ID:           i.ID,
		AllocationID: i.AllocationID,
		Issue:        i.Issue,
		Status:       i.Status,
		ReportedAt:   i.ReportedAt.Format(time.RFC3339),
		Resolution:   i.Resolution,
		ResolvedBy:   i.ResolvedBy,
	}
	if i.ResolvedAt != nil {
		resp.ResolvedAt = i.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}
