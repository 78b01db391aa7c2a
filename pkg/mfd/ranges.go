package mfd

import (
	"context"

	"flightrec/pkg/chart"
	"flightrec/pkg/config"
)

// SetAltRange sets the altitude range shared by the Vtan/Alt, Vrad/Alt and
// Alt/Range graphs: "a" for auto, or "min max" in km.
func (m *MFD) SetAltRange(ctx context.Context, text string) error {
	return m.setRange(ctx, &m.altAxis, config.KeyMFDAltRange, text)
}

// SetVradRange sets the radial velocity axis of the Vrad/Alt graph.
func (m *MFD) SetVradRange(ctx context.Context, text string) error {
	return m.setRange(ctx, &m.vradAxis, config.KeyMFDVradRange, text)
}

// SetVtanRange sets the tangential velocity axis of the Vtan/Alt and
// Vtan/Range graphs.
func (m *MFD) SetVtanRange(ctx context.Context, text string) error {
	return m.setRange(ctx, &m.vtanAxis, config.KeyMFDVtanRange, text)
}

func (m *MFD) setRange(ctx context.Context, dst *chart.Axis, key, text string) error {
	a, err := chart.ParseAxis(text)
	if err != nil {
		return err
	}
	*dst = a
	m.persist(ctx, key, a.String())
	m.Refresh()
	return nil
}
