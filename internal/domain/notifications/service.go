package notifications

import "context"

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, agencyID, userID, ntype, title, body string) error {
	return s.store.CreateNotification(ctx, agencyID, userID, ntype, title, body)
}

func (s *Service) List(ctx context.Context, agencyID, userID string, limit, offset int) ([]map[string]any, error) {
	return s.store.ListNotifications(ctx, agencyID, userID, limit, offset)
}

func (s *Service) Count(ctx context.Context, agencyID, userID string) (int, error) {
	return s.store.CountNotifications(ctx, agencyID, userID)
}

func (s *Service) MarkRead(ctx context.Context, agencyID, userID, notificationID string) error {
	return s.store.MarkRead(ctx, agencyID, userID, notificationID)
}
