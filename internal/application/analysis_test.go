package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"place-lens/internal/domain/entity"
)

type fakePreprocessor struct {
	img  *entity.PreparedImage
	err  error
	path string
	data []byte
}

func (f *fakePreprocessor) Prepare(ctx context.Context, path string) (*entity.PreparedImage, error) {
	f.path = path
	return f.img, f.err
}

func (f *fakePreprocessor) PrepareBytes(ctx context.Context, data []byte) (*entity.PreparedImage, error) {
	f.data = data
	return f.img, f.err
}

type fakeModel struct {
	calls  int
	prompt string
	img    *entity.PreparedImage
	reply  string
	err    error
}

func (f *fakeModel) Name() string { return "fake:model" }

func (f *fakeModel) Describe(ctx context.Context, prompt string, img *entity.PreparedImage) (string, error) {
	f.calls++
	f.prompt = prompt
	f.img = img
	return f.reply, f.err
}

func TestAnalysisService_AnalyzeFile(t *testing.T) {
	img := &entity.PreparedImage{Data: []byte("jpg"), MIMEType: "image/jpeg", Width: 10, Height: 10}
	pre := &fakePreprocessor{img: img}
	model := &fakeModel{reply: sampleAnalysis}
	svc := NewAnalysisService(pre, model, nil)

	out, err := svc.AnalyzeFile(context.Background(), "photo.jpg")
	require.NoError(t, err)
	require.Equal(t, "photo.jpg", pre.path)
	require.Equal(t, 1, model.calls)
	require.Equal(t, BuildPrompt(), model.prompt)
	require.Same(t, img, model.img)
	require.Equal(t, sampleAnalysis, out.Raw)
	require.NoError(t, out.ParseErr)
	require.Equal(t, entity.InputPlacePhoto, out.Parsed.InputType)
}

func TestAnalysisService_RawKeptWhenUnparseable(t *testing.T) {
	model := &fakeModel{reply: "I think this is Paris."}
	svc := NewAnalysisService(&fakePreprocessor{img: &entity.PreparedImage{MIMEType: "image/jpeg"}}, model, nil)

	out, err := svc.AnalyzeBytes(context.Background(), []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "I think this is Paris.", out.Raw)
	require.Nil(t, out.Parsed)
	require.ErrorIs(t, out.ParseErr, entity.ErrInvalidAnalysis)
}

func TestAnalysisService_PreprocessErrorSkipsModel(t *testing.T) {
	model := &fakeModel{}
	pre := &fakePreprocessor{err: entity.ErrImageNotFound}
	svc := NewAnalysisService(pre, model, nil)

	_, err := svc.AnalyzeFile(context.Background(), "missing.jpg")
	require.ErrorIs(t, err, entity.ErrImageNotFound)
	require.Zero(t, model.calls)
}

func TestAnalysisService_ModelError(t *testing.T) {
	boom := errors.New("503")
	model := &fakeModel{err: boom}
	svc := NewAnalysisService(&fakePreprocessor{img: &entity.PreparedImage{}}, model, nil)

	_, err := svc.AnalyzeFile(context.Background(), "photo.jpg")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "fake:model")
	require.Equal(t, 1, model.calls)
}

func TestAnalysisService_NotConfigured(t *testing.T) {
	_, err := NewAnalysisService(nil, nil, nil).AnalyzeFile(context.Background(), "x")
	require.Error(t, err)

	_, err = NewAnalysisService(&fakePreprocessor{img: &entity.PreparedImage{}}, nil, nil).AnalyzeBytes(context.Background(), nil)
	require.Error(t, err)
}
