// Package navdata is the navigation data collaborator (spec §9's
// "process-wide atomic latest-value cell"): position and heading are
// written by one ingest task and read by many radar tasks, so the cell
// uses sync/atomic loads/stores rather than a mutex, exactly as spec's
// design notes prescribe retaining the source's global-atomic-floats
// model.
package navdata

import (
	"bufio"
	"context"
	"math"
	"net"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/wavemark/radargw/internal/monitoring"
)

// Store holds each value as float64 bits for atomic storage; NaN means
// "unset".
type Store struct {
	headingBits atomic.Uint64
	latBits     atomic.Uint64
	lonBits     atomic.Uint64
}

func NewStore() *Store {
	s := &Store{}
	s.headingBits.Store(math.Float64bits(math.NaN()))
	s.latBits.Store(math.Float64bits(math.NaN()))
	s.lonBits.Store(math.Float64bits(math.NaN()))
	return s
}

func (s *Store) SetHeadingTrue(deg float64) {
	s.headingBits.Store(math.Float64bits(deg))
}

// HeadingTrue implements spoke.Heading.
func (s *Store) HeadingTrue() (float64, bool) {
	v := math.Float64frombits(s.headingBits.Load())
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func (s *Store) SetPosition(lat, lon float64) {
	s.latBits.Store(math.Float64bits(lat))
	s.lonBits.Store(math.Float64bits(lon))
}

func (s *Store) Position() (lat, lon float64, ok bool) {
	lat = math.Float64frombits(s.latBits.Load())
	lon = math.Float64frombits(s.lonBits.Load())
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

// IngestNMEA0183 reads NMEA 0183 sentences from conn, updating store on
// every recognized HDT (true heading) or GGA (position) sentence. It
// returns when ctx is canceled or conn is exhausted.
func IngestNMEA0183(ctx context.Context, conn net.Conn, store *Store) {
	defer conn.Close()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		applySentence(line, store)
	}
}

func applySentence(line string, store *Store) {
	if !strings.HasPrefix(line, "$") {
		return
	}
	body := line[1:]
	if idx := strings.IndexByte(body, '*'); idx >= 0 {
		body = body[:idx]
	}
	fields := strings.Split(body, ",")
	if len(fields) == 0 {
		return
	}
	talkerSentence := fields[0]
	if len(talkerSentence) < 3 {
		return
	}
	sentenceType := talkerSentence[len(talkerSentence)-3:]

	switch sentenceType {
	case "HDT":
		if len(fields) >= 2 {
			if deg, err := strconv.ParseFloat(fields[1], 64); err == nil {
				store.SetHeadingTrue(deg)
			}
		}
	case "GGA":
		if len(fields) >= 6 {
			lat, latOK := parseLatLon(fields[2], fields[3], true)
			lon, lonOK := parseLatLon(fields[4], fields[5], false)
			if latOK && lonOK {
				store.SetPosition(lat, lon)
			}
		}
	default:
		monitoring.Logf("navdata: unhandled sentence %s", sentenceType)
	}
}

// parseLatLon decodes NMEA's ddmm.mmmm / dddmm.mmmm format into decimal
// degrees, applying the hemisphere sign from the following field.
func parseLatLon(value, hemisphere string, isLat bool) (float64, bool) {
	if value == "" {
		return 0, false
	}
	degWidth := 2
	if !isLat {
		degWidth = 3
	}
	if len(value) < degWidth+2 {
		return 0, false
	}
	deg, err := strconv.ParseFloat(value[:degWidth], 64)
	if err != nil {
		return 0, false
	}
	min, err := strconv.ParseFloat(value[degWidth:], 64)
	if err != nil {
		return 0, false
	}
	result := deg + min/60
	if hemisphere == "S" || hemisphere == "W" {
		result = -result
	}
	return result, true
}
