package plant

import (
	"fmt"

	"github.com/san-kum/epid/internal/sim"
)

// Heater is a lumped thermal mass (water in a mild steel cube) heated by an
// element of power u[0] watts and losing heat to the room by convection.
// State is [temperature °C].
type Heater struct {
	RoomTemp     float64 // °C
	SpecificHeat float64 // J/(g·°C)
	Mass         float64 // g
	Surface      float64 // m²
	Convection   float64 // W/(m²·K)
}

func NewHeater() *Heater {
	return &Heater{
		RoomTemp:     20.0,
		SpecificHeat: 4.186,
		Mass:         100.0,
		Surface:      6.0 * 0.0025,
		Convection:   11.3,
	}
}

func (h *Heater) StateDim() int {
	return 1
}

func (h *Heater) ControlDim() int {
	return 1
}

// Derivative returns dT/dt. The element can only add heat, so negative
// power is treated as zero.
func (h *Heater) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	temp := x[0]
	loss := h.Convection * (temp - h.RoomTemp) * h.Surface

	power := 0.0
	if len(u) > 0 && u[0] > 0 {
		power = u[0]
	}

	return sim.State{(power - loss) / (h.SpecificHeat * h.Mass)}
}

func (h *Heater) GetParams() map[string]float64 {
	return map[string]float64{
		"room_temp":     h.RoomTemp,
		"specific_heat": h.SpecificHeat,
		"mass":          h.Mass,
		"surface":       h.Surface,
		"convection":    h.Convection,
	}
}

func (h *Heater) SetParam(name string, value float64) error {
	switch name {
	case "room_temp":
		h.RoomTemp = value
	case "specific_heat":
		h.SpecificHeat = value
	case "mass":
		h.Mass = value
	case "surface":
		h.Surface = value
	case "convection":
		h.Convection = value
	default:
		return fmt.Errorf("heater: unknown parameter %q", name)
	}
	return nil
}
