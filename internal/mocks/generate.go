// Package mocks provides mock implementations for testing the zion sync engine.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockSessionStore(ctrl)
//	mockStore.EXPECT().Load(gomock.Any()).Return(sess, nil)
package mocks

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Load, Save, Clear
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/zion-platform/zion-sync/internal/ports SessionStore

// Generate mock for NotificationAPI interface from internal/ports package.
// This creates MockNotificationAPI with methods for all NotificationAPI interface methods:
// Notifications, UnreadCount, MarkRead, MarkAllRead, Delete, ClearAll, SendTestPush
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=notification_api_mock.go github.com/zion-platform/zion-sync/internal/ports NotificationAPI

// Generate mock for PushAPI interface from internal/ports package.
// This creates MockPushAPI with methods for all PushAPI interface methods:
// RegisterPushToken
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=push_api_mock.go github.com/zion-platform/zion-sync/internal/ports PushAPI

// Generate mock for PermissionGate interface from internal/ports package.
// This creates MockPermissionGate with methods for all PermissionGate interface methods:
// RequestPermission
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=permission_gate_mock.go github.com/zion-platform/zion-sync/internal/ports PermissionGate

// Generate mock for PushTokenProvider interface from internal/ports package.
// This creates MockPushTokenProvider with methods for all PushTokenProvider interface methods:
// PushToken
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=push_token_provider_mock.go github.com/zion-platform/zion-sync/internal/ports PushTokenProvider

// Generate mock for Confirmer interface from internal/ports package.
// This creates MockConfirmer with methods for all Confirmer interface methods:
// Confirm
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=confirmer_mock.go github.com/zion-platform/zion-sync/internal/ports Confirmer
