package services

import (
	"fmt"
	"warboard/internal/models"
	"warboard/internal/providers"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

type SnapshotStoreInterface interface {
	Put(tag string, snapshot *models.WarSnapshot) error
	Get(tag string) (*models.WarSnapshot, bool)
	Forget(tag string)
}

// SnapshotStore keeps the latest snapshot per clan tag, zstd-compressed, in
// the shared cache.
type SnapshotStore struct {
	cache      providers.CacheProviderInterface
	compressor CompressorInterface
	logger     providers.Logger
}

func snapshotKey(tag string) string {
	return "war:" + tag
}

func (s *SnapshotStore) Put(tag string, snapshot *models.WarSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot for %s: %w", tag, err)
	}
	packed, err := s.compressor.Compress(raw)
	if err != nil {
		return fmt.Errorf("compress snapshot for %s: %w", tag, err)
	}
	if err = s.cache.Set(snapshotKey(tag), packed); err != nil {
		return fmt.Errorf("cache snapshot for %s: %w", tag, err)
	}
	return nil
}

func (s *SnapshotStore) Get(tag string) (*models.WarSnapshot, bool) {
	packed, ok := s.cache.Get(snapshotKey(tag))
	if !ok {
		return nil, false
	}
	raw, err := s.compressor.Decompress(packed)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Dropping unreadable cached snapshot for %s: %s", tag, err)
		s.cache.Del(snapshotKey(tag))
		return nil, false
	}
	var snapshot models.WarSnapshot
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		s.logger.Warnf(providers.TypeApp, "Dropping undecodable cached snapshot for %s: %s", tag, err)
		s.cache.Del(snapshotKey(tag))
		return nil, false
	}
	return &snapshot, true
}

func (s *SnapshotStore) Forget(tag string) {
	s.cache.Del(snapshotKey(tag))
}

func NewSnapshotStore(cache providers.CacheProviderInterface, compressor CompressorInterface, logger providers.Logger) SnapshotStoreInterface {
	return &SnapshotStore{
		cache:      cache,
		compressor: compressor,
		logger:     logger,
	}
}
