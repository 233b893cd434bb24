package ridgeline

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	_ "github.com/google/tiff/geotiff"
	"golang.org/x/image/tiff/lzw"
)

var errShortRead = errors.New("short read")

// A geoTIFFIFD is a struct into which github.com/google/tiff can unmarshal
// an IFD.
type geoTIFFIFD struct {
	ImageWidth          uint32   `tiff:"field,tag=256"`
	ImageLength         uint32   `tiff:"field,tag=257"`
	BitsPerSample       uint16   `tiff:"field,tag=258"`
	Compression         uint16   `tiff:"field,tag=259"`
	StripOffsets        []uint64 `tiff:"field,tag=273"`
	SamplesPerPixel     uint16   `tiff:"field,tag=277"`
	RowsPerStrip        uint32   `tiff:"field,tag=278"`
	StripByteCounts     []uint64 `tiff:"field,tag=279"`
	PlanarConfiguration uint16   `tiff:"field,tag=284"`
	Predictor           uint16   `tiff:"field,tag=317"`
	TileWidth           uint32   `tiff:"field,tag=322"`
	TileLength          uint32   `tiff:"field,tag=323"`
	TileOffsets         []uint64 `tiff:"field,tag=324"`
	TileByteCounts      []uint64 `tiff:"field,tag=325"`
	SampleFormat        uint16   `tiff:"field,tag=339"`
	GDALNoData          string   `tiff:"field,tag=42113"`
}

const (
	compressionNone = 1
	compressionLZW  = 5

	sampleFormatUint  = 1
	sampleFormatInt   = 2
	sampleFormatFloat = 3
)

// ReadGeoTIFFGridFile reads the GeoTIFF DEM at filename in fsys into a
// MemGrid.
func ReadGeoTIFFGridFile(fsys fs.FS, filename string) (*MemGrid, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	return ReadGeoTIFFGrid(data)
}

// ReadGeoTIFFGrid decodes a single-IFD GeoTIFF DEM into a MemGrid. Tiled and
// stripped layouts, 16-bit integer and 32-bit float samples, and LZW or no
// compression are supported. Nodata samples are mapped to sea level.
func ReadGeoTIFFGrid(data []byte) (*MemGrid, error) {
	byteOrder, err := tiffByteOrder(data)
	if err != nil {
		return nil, err
	}

	tiffTIFF, err := tiff.Parse(bytes.NewReader(data), tiff.GetTagSpace("GeoTIFF"), nil)
	if err != nil {
		return nil, err
	}
	if len(tiffTIFF.IFDs()) != 1 {
		return nil, fmt.Errorf("found %d IFDs, expected 1", len(tiffTIFF.IFDs()))
	}
	var ifd geoTIFFIFD
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &ifd); err != nil {
		return nil, err
	}

	switch {
	case ifd.BitsPerSample != 16 && ifd.BitsPerSample != 32:
		return nil, fmt.Errorf("%d bits per sample: %w", ifd.BitsPerSample, errors.ErrUnsupported)
	case ifd.BitsPerSample == 16 && ifd.SampleFormat > sampleFormatInt:
		return nil, fmt.Errorf("16-bit sample format %d: %w", ifd.SampleFormat, errors.ErrUnsupported)
	case ifd.BitsPerSample == 32 && ifd.SampleFormat != sampleFormatFloat:
		return nil, fmt.Errorf("32-bit sample format %d: %w", ifd.SampleFormat, errors.ErrUnsupported)
	case ifd.Compression != compressionNone && ifd.Compression != compressionLZW:
		return nil, fmt.Errorf("compression %d: %w", ifd.Compression, errors.ErrUnsupported)
	case ifd.SamplesPerPixel > 1:
		return nil, fmt.Errorf("%d samples per pixel: %w", ifd.SamplesPerPixel, errors.ErrUnsupported)
	case ifd.PlanarConfiguration > 1 || ifd.Predictor > 1:
		return nil, errors.ErrUnsupported
	}

	width := int(ifd.ImageWidth)
	height := int(ifd.ImageLength)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d GeoTIFF", ErrEmptyRaster, width, height)
	}

	noData := math.NaN()
	if s := strings.TrimSpace(ifd.GDALNoData); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			noData = v
		}
	}

	d := &geoTIFFDecoder{
		data:           data,
		byteOrder:      byteOrder,
		bytesPerSample: int(ifd.BitsPerSample) / 8,
		sampleFormat:   ifd.SampleFormat,
		compressed:     ifd.Compression == compressionLZW,
		noData:         noData,
	}

	samples := make([][]float64, height)
	for row := range samples {
		samples[row] = make([]float64, width)
	}

	if ifd.TileWidth > 0 {
		if err := d.decodeTiles(&ifd, samples); err != nil {
			return nil, err
		}
	} else {
		if err := d.decodeStrips(&ifd, samples); err != nil {
			return nil, err
		}
	}
	return NewMemGrid(samples), nil
}

type geoTIFFDecoder struct {
	data           []byte
	byteOrder      binary.ByteOrder
	bytesPerSample int
	sampleFormat   uint16
	compressed     bool
	noData         float64
}

func (d *geoTIFFDecoder) decodeTiles(ifd *geoTIFFIFD, samples [][]float64) error {
	width, height := int(ifd.ImageWidth), int(ifd.ImageLength)
	tileWidth, tileLength := int(ifd.TileWidth), int(ifd.TileLength)
	if tileLength == 0 {
		return errors.New("zero tile length")
	}
	tilesAcross := (width + tileWidth - 1) / tileWidth
	tilesDown := (height + tileLength - 1) / tileLength
	if len(ifd.TileOffsets) != tilesAcross*tilesDown || len(ifd.TileByteCounts) != tilesAcross*tilesDown {
		return errors.New("incorrect number of tile byte counts or offsets")
	}
	for tileRow := 0; tileRow < tilesDown; tileRow++ {
		for tileCol := 0; tileCol < tilesAcross; tileCol++ {
			tileIndex := tileCol + tilesAcross*tileRow
			blockData, err := d.blockData(ifd.TileOffsets[tileIndex], ifd.TileByteCounts[tileIndex], tileWidth*tileLength)
			if err != nil {
				return err
			}
			for y := 0; y < tileLength; y++ {
				row := tileRow*tileLength + y
				if row >= height {
					break
				}
				for x := 0; x < tileWidth; x++ {
					col := tileCol*tileWidth + x
					if col >= width {
						break
					}
					samples[row][col] = d.sample(blockData, y*tileWidth+x)
				}
			}
		}
	}
	return nil
}

func (d *geoTIFFDecoder) decodeStrips(ifd *geoTIFFIFD, samples [][]float64) error {
	width, height := int(ifd.ImageWidth), int(ifd.ImageLength)
	rowsPerStrip := int(ifd.RowsPerStrip)
	if rowsPerStrip == 0 || rowsPerStrip > height {
		rowsPerStrip = height
	}
	stripCount := (height + rowsPerStrip - 1) / rowsPerStrip
	if len(ifd.StripOffsets) != stripCount || len(ifd.StripByteCounts) != stripCount {
		return errors.New("incorrect number of strip byte counts or offsets")
	}
	for strip := 0; strip < stripCount; strip++ {
		rowsInStrip := min(rowsPerStrip, height-strip*rowsPerStrip)
		blockData, err := d.blockData(ifd.StripOffsets[strip], ifd.StripByteCounts[strip], rowsInStrip*width)
		if err != nil {
			return err
		}
		for y := 0; y < rowsInStrip; y++ {
			row := strip*rowsPerStrip + y
			for col := 0; col < width; col++ {
				samples[row][col] = d.sample(blockData, y*width+col)
			}
		}
	}
	return nil
}

// blockData returns the decompressed bytes of one tile or strip. offset and
// byteCount come straight from the file and must not be trusted; the bounds
// checks avoid overflow in offset+byteCount.
func (d *geoTIFFDecoder) blockData(offset, byteCount uint64, sampleCount int) ([]byte, error) {
	if offset > uint64(len(d.data)) || byteCount > uint64(len(d.data))-offset {
		return nil, errShortRead
	}
	raw := d.data[offset : offset+byteCount]
	uncompressedSize := sampleCount * d.bytesPerSample
	if !d.compressed {
		if len(raw) < uncompressedSize {
			return nil, errShortRead
		}
		return raw, nil
	}
	blockData := make([]byte, uncompressedSize)
	r := lzw.NewReader(bytes.NewReader(raw), lzw.MSB, 8)
	for bytesRead := 0; bytesRead < uncompressedSize; {
		n, err := r.Read(blockData[bytesRead:])
		if n == 0 && err != nil {
			if err == io.EOF {
				return nil, errShortRead
			}
			return nil, err
		}
		bytesRead += n
	}
	return blockData, nil
}

// sample decodes the i'th sample in blockData.
func (d *geoTIFFDecoder) sample(blockData []byte, i int) float64 {
	var sample float64
	switch d.bytesPerSample {
	case 2:
		bits := d.byteOrder.Uint16(blockData[2*i : 2*i+2])
		if d.sampleFormat == sampleFormatInt {
			sample = float64(int16(bits))
		} else {
			sample = float64(bits)
		}
	case 4:
		bits := d.byteOrder.Uint32(blockData[4*i : 4*i+4])
		sample = float64(math.Float32frombits(bits))
	}
	if sample == d.noData {
		return 0
	}
	return sample
}

// tiffByteOrder reads the byte order from the TIFF header.
func tiffByteOrder(data []byte) (binary.ByteOrder, error) {
	if len(data) < 4 {
		return nil, errShortRead
	}
	switch string(data[:2]) {
	case "II":
		return binary.LittleEndian, nil
	case "MM":
		return binary.BigEndian, nil
	default:
		return nil, errors.New("not a TIFF file")
	}
}
