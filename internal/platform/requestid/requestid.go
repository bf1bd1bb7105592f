// Package requestid issues correlation ids for request logging.
package requestid

import "github.com/google/uuid"

func New() string {
	return uuid.NewString()
}
