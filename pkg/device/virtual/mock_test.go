package virtual

import (
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/command"
)

func TestMockPaintsRectangles(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), 40, 30)

	require.NoError(t, m.Send(command.SetPallet(command.Black, command.White)))
	require.NoError(t, m.Send(command.ClearScreen()))
	require.NoError(t, m.Send(command.FillRectangle(2, 3, 5, 4)))

	img := m.Snapshot()
	require.Equal(t, uint8(0x00), img.GrayAt(2, 3).Y)
	require.Equal(t, uint8(0x00), img.GrayAt(5, 4).Y)
	require.Equal(t, uint8(0xFF), img.GrayAt(6, 4).Y)
	require.Equal(t, uint8(0xFF), img.GrayAt(2, 5).Y)

	require.Equal(t, 3, m.Stats().Frames)
	require.Equal(t, 1, m.Count(command.OpFillRectangle))
	require.Zero(t, m.Backlog())
}

func TestMockClearUsesBackground(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), 10, 10)

	require.NoError(t, m.Send(command.SetPallet(command.Black, command.LightGray)))
	require.NoError(t, m.Send(command.ClearScreen()))
	require.Equal(t, uint8(0xAA), m.Snapshot().GrayAt(9, 9).Y)

	require.NoError(t, m.Send(command.SetPallet(command.DarkGray, command.White)))
	require.NoError(t, m.Send(command.DrawRectangle(1, 1, 8, 8)))

	img := m.Snapshot()
	require.Equal(t, uint8(0x55), img.GrayAt(1, 5).Y)
	require.Equal(t, uint8(0x55), img.GrayAt(8, 8).Y)
	require.Equal(t, uint8(0xAA), img.GrayAt(4, 4).Y)
}

func TestMockSnapshotIsCopy(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), 4, 4)
	img := m.Snapshot()
	img.Pix[0] = 0x10
	require.Equal(t, uint8(0xFF), m.Snapshot().GrayAt(0, 0).Y)
}

func TestMockSave(t *testing.T) {
	m := Mock(zaptest.NewLogger(t), 16, 8)
	require.NoError(t, m.Send(command.FillRectangle(0, 0, 7, 7)))

	path := filepath.Join(t.TempDir(), "canvas.png")
	require.NoError(t, m.Save(path))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, 8, img.Bounds().Dy())
}
