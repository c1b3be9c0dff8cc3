// Package mocks provides mock implementations for testing the contacts system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository and adapter interfaces in internal/core.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/target/contacts-api/internal/core UserRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=profile_cache_mock.go github.com/target/contacts-api/internal/core ProfileCache
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=contact_repository_mock.go github.com/target/contacts-api/internal/core ContactRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=media_store_mock.go github.com/target/contacts-api/internal/core MediaStore
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=reset_notifier_mock.go github.com/target/contacts-api/internal/core ResetNotifier
