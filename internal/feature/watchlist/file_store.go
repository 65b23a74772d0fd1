package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// fileFormat はウォッチリストファイルのJSON形式です。
type fileFormat struct {
	Tickers []string `json:"tickers"`
}

// FileStore はウォッチリストをJSONファイルに保存するStore実装です。
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore は指定パスを使うFileStoreを生成します。
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath はETF_WATCHLIST_PATH、なければユーザー設定ディレクトリ配下のパスを返します。
func DefaultPath() (string, error) {
	if p := os.Getenv("ETF_WATCHLIST_PATH"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "etfctl", "watchlist.json"), nil
}

// Path はファイルパスを返します。
func (f *FileStore) Path() string {
	return f.path
}

// Load はファイルを読み込みます。ファイルがなければ空の集合を返します。
func (f *FileStore) Load(ctx context.Context) (Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var ff fileFormat
	if err := json.Unmarshal(b, &ff); err != nil {
		return nil, fmt.Errorf("decode watchlist %s: %w", f.path, err)
	}
	return NewSet(ff.Tickers...), nil
}

// Save は一時ファイルに書いてからリネームし、途中で失敗しても既存ファイルを壊しません。
func (f *FileStore) Save(ctx context.Context, s Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.MarshalIndent(fileFormat{Tickers: s.Tickers()}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".watchlist-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close watchlist: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace watchlist: %w", err)
	}
	return nil
}
