// Copyright (c) 2026 Litho Press. All rights reserved.

package release

import "time"

// SetNow swaps the service clock so tests can pin the calendar window.
func SetNow(service *Service, now func() time.Time) {
	service.now = now
}
