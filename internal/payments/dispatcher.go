package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Dispatcher routes a named tool call to the refund resolver, the capture
// resolver, or a generic provider invocation via the catalog.
type Dispatcher struct {
	catalog *Catalog
	refund  RefundResolver
	capture CaptureResolver
	prov    Provider
}

func NewDispatcher(prov Provider, lookup DirectoryLookup) *Dispatcher {
	return &Dispatcher{
		catalog: NewCatalog(),
		refund:  RefundResolver{Provider: prov, Lookup: lookup},
		capture: CaptureResolver{Provider: prov},
		prov:    prov,
	}
}

// Dispatch executes one tool call. The returned value is the success payload
// (`result` in the relay response).
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, params map[string]any) (any, error) {
	route, ok := d.catalog.Resolve(toolName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tool %q", ErrNotFound, toolName)
	}

	switch route.Kind {
	case RouteRefund:
		return d.refund.Resolve(ctx, ParseRefundRequest(params))
	case RouteCapture:
		return d.capture.Resolve(ctx, ParseCaptureRequest(params))
	default:
		args, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("%w: parameters not serializable: %v", ErrInvalidInput, err)
		}
		inv := ToolInvocation{
			ID:        uuid.NewString(),
			Name:      route.Tool.Name,
			Arguments: string(args),
		}
		return d.prov.Call(ctx, inv)
	}
}
