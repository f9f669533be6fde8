// Package app composes the Plateful backend into a running application.
//
// The package wires the domain services together and owns their lifecycle,
// but holds no business logic of its own. The layout underneath it:
//
//	internal/app/
//	├── application.go      # Application struct, wiring and lifecycle
//	├── domain/             # Domain models (pure data structures)
//	│   ├── user/           # Account records
//	│   ├── token/          # Bearer session tokens
//	│   ├── menu/           # Catalogue items
//	│   ├── cart/           # Per-session shopping carts
//	│   └── order/          # Checkout records
//	├── storage/            # Store interface and implementations
//	│   ├── interfaces.go   # Collection names and the Store contract
//	│   ├── filestore/      # Flat JSON files, one per record
//	│   └── memory/         # In-memory implementation for tests
//	├── services/           # Business logic
//	│   ├── auth/           # Token issue, verify, extend, revoke
//	│   ├── checkout/       # Order placement workflow
//	│   ├── payment/        # Stripe charge client
//	│   ├── mailer/         # Mailgun receipt client
//	│   ├── reaper/         # Expired token and cart cleanup
//	│   └── random/         # Opaque identifier generation
//	├── httpapi/            # Request normalization, routing, handlers
//	├── system/             # Lifecycle manager for background services
//	├── metrics/            # Prometheus collectors
//	└── runtime/            # Config-driven assembly and the HTTP server
//
// Handlers in httpapi depend on services, services depend on storage, and
// nothing depends back on app. cmd/server builds the runtime application;
// cmd/inspect reads the same storage layout directly.
package app
