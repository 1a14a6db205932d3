package layout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadFleetCSV reads aircraft definitions from a CSV file with a header row.
// Columns may appear in any order; unknown columns are ignored.
func LoadFleetCSV(path string) ([]AircraftDef, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fleet CSV %s: %w", path, err)
	}
	defer file.Close()

	return readFleetCSV(file)
}

func readFleetCSV(r io.Reader) ([]AircraftDef, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet CSV header: %w", err)
	}
	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		headerMap[strings.ToLower(strings.Trim(strings.TrimSpace(h), "'\""))] = i
	}
	for _, required := range []string{"registration", "kind"} {
		if _, ok := headerMap[required]; !ok {
			return nil, fmt.Errorf("fleet CSV is missing column %q", required)
		}
	}

	defs := make([]AircraftDef, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read fleet CSV line %d: %w", line, err)
		}

		def := AircraftDef{
			Registration: getField(record, headerMap, "registration"),
			Kind:         getField(record, headerMap, "kind"),
			Model:        getField(record, headerMap, "model"),
			Engine:       getField(record, headerMap, "engine"),
		}
		// Skip rows without a registration
		if def.Registration == "" {
			continue
		}

		floats := map[string]*float64{
			"empty_weight_kg":         &def.EmptyWeightKg,
			"mtow_kg":                 &def.MaxTakeoffWeightKg,
			"fuel_capacity_l":         &def.FuelCapacityL,
			"consumption_l_per_100km": &def.ConsumptionLPer100Km,
			"cargo_volume_m3":         &def.CargoVolumeM3,
			"max_payload_kg":          &def.MaxPayloadKg,
			"efficiency_factor":       &def.EfficiencyFactor,
		}
		for col, dst := range floats {
			if *dst, err = parseFloatField(record, headerMap, col); err != nil {
				return nil, fmt.Errorf("fleet CSV line %d: %w", line, err)
			}
		}
		ints := map[string]*int{
			"seat_rows":     &def.SeatRows,
			"seats_per_row": &def.SeatsPerRow,
		}
		for col, dst := range ints {
			if *dst, err = parseIntField(record, headerMap, col); err != nil {
				return nil, fmt.Errorf("fleet CSV line %d: %w", line, err)
			}
		}

		defs = append(defs, def)
	}
	return defs, nil
}

// getField safely retrieves a field from a CSV record by header name
func getField(record []string, headerMap map[string]int, fieldName string) string {
	if idx, ok := headerMap[fieldName]; ok && idx < len(record) {
		return strings.Trim(strings.TrimSpace(record[idx]), "'\"")
	}
	return ""
}

func parseFloatField(record []string, headerMap map[string]int, fieldName string) (float64, error) {
	raw := getField(record, headerMap, fieldName)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", fieldName, raw, err)
	}
	return v, nil
}

func parseIntField(record []string, headerMap map[string]int, fieldName string) (int, error) {
	raw := getField(record, headerMap, fieldName)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", fieldName, raw, err)
	}
	return v, nil
}
