package opentopo_test

import (
	"context"
	"encoding/binary"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/alecthomas/assert/v2"

	ridgeline "github.com/tjbutt92/map-elevation-desire"
	"github.com/tjbutt92/map-elevation-desire/opentopo"
)

var testExtent = ridgeline.Extent{LonMin: 6.5, LatMin: 45.4, LonMax: 6.8, LatMax: 45.6}

func TestClientFetchGrid(t *testing.T) {
	samples := [][]float32{
		{100.5, 200.25},
		{300, 400},
	}
	var requests int
	var lastQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		lastQuery = r.URL.Query()
		_, _ = w.Write(encodeFloat32TIFF(samples))
	}))
	defer server.Close()

	client, err := opentopo.NewClient("test-key", opentopo.WithBaseURL(server.URL))
	assert.NoError(t, err)

	grid, err := client.FetchGrid(context.Background(), testExtent)
	assert.NoError(t, err)
	assert.Equal(t, 2, grid.Height())
	assert.Equal(t, 2, grid.Width())
	assert.Equal(t, 100.5, grid.Sample(0, 0))
	assert.Equal(t, 400.0, grid.Sample(1, 1))

	assert.Equal(t, "SRTMGL1", lastQuery.Get("demtype"))
	assert.Equal(t, "45.4", lastQuery.Get("south"))
	assert.Equal(t, "45.6", lastQuery.Get("north"))
	assert.Equal(t, "6.5", lastQuery.Get("west"))
	assert.Equal(t, "6.8", lastQuery.Get("east"))
	assert.Equal(t, "GTiff", lastQuery.Get("outputFormat"))
	assert.Equal(t, "test-key", lastQuery.Get("API_Key"))

	// A second fetch of the same extent is served from the cache.
	cached, err := client.FetchGrid(context.Background(), testExtent)
	assert.NoError(t, err)
	assert.Equal(t, grid, cached)
	assert.Equal(t, 1, requests)
}

func TestClientFetchGridErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no API key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := opentopo.NewClient("", opentopo.WithBaseURL(server.URL))
	assert.NoError(t, err)

	_, err = client.FetchGrid(context.Background(), testExtent)
	assert.Error(t, err)
}

// encodeFloat32TIFF builds a minimal little-endian single-strip TIFF with
// 32-bit float samples.
func encodeFloat32TIFF(samples [][]float32) []byte {
	height := len(samples)
	width := len(samples[0])

	stripData := make([]byte, 0, 4*width*height)
	for _, row := range samples {
		for _, sample := range row {
			stripData = binary.LittleEndian.AppendUint32(stripData, math.Float32bits(sample))
		}
	}

	const (
		typeShort = 3
		typeLong  = 4
	)
	stripOffset := uint32(8)
	ifdOffset := stripOffset + uint32(len(stripData))
	entries := [][3]uint32{
		{256, typeLong, uint32(width)},
		{257, typeLong, uint32(height)},
		{258, typeShort, 32},
		{259, typeShort, 1},
		{262, typeShort, 1},
		{273, typeLong, stripOffset},
		{277, typeShort, 1},
		{278, typeLong, uint32(height)},
		{279, typeLong, uint32(len(stripData))},
		{339, typeShort, 3},
	}

	data := make([]byte, 0, int(ifdOffset)+2+12*len(entries)+4)
	data = append(data, 'I', 'I')
	data = binary.LittleEndian.AppendUint16(data, 42)
	data = binary.LittleEndian.AppendUint32(data, ifdOffset)
	data = append(data, stripData...)

	data = binary.LittleEndian.AppendUint16(data, uint16(len(entries)))
	for _, entry := range entries {
		data = binary.LittleEndian.AppendUint16(data, uint16(entry[0]))
		data = binary.LittleEndian.AppendUint16(data, uint16(entry[1]))
		data = binary.LittleEndian.AppendUint32(data, 1)
		if entry[1] == typeShort {
			data = binary.LittleEndian.AppendUint16(data, uint16(entry[2]))
			data = binary.LittleEndian.AppendUint16(data, 0)
		} else {
			data = binary.LittleEndian.AppendUint32(data, entry[2])
		}
	}
	data = binary.LittleEndian.AppendUint32(data, 0)
	return data
}
