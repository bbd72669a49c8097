// Package providers contains dependency injection providers for the ShelfTalk server.
package providers

import "time"

// shutdownTimeout bounds graceful shutdown of long-lived services.
const shutdownTimeout = 10 * time.Second
