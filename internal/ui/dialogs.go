package ui

import (
	"path/filepath"

	"rsafront/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// fileDialogSize is large enough to show full paths in the picker.
var fileDialogSize = fyne.NewSize(600, 450)

// browseEngine lets the user pick the engine executable, then probes it.
func (a *App) browseEngine() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		// Close immediately - we only need the path
		reader.Close()

		path := reader.URI().Path()
		log.Debug("engine chosen", log.String("path", path))
		a.ctrl.SetEnginePath(a.ctx, path)
	}, a.Window)

	if path, _ := a.ctrl.State().Engine(); path != "" {
		setStartDir(d, filepath.Dir(path))
	}
	showFileDialogWithResize(d, fileDialogSize)
}

// browseInput lets the user pick the file to encrypt.
func (a *App) browseInput() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		a.selectInput(reader.URI().Path())
	}, a.Window)

	if input := a.ctrl.State().Input(); input != "" {
		setStartDir(d, filepath.Dir(input))
	}
	showFileDialogWithResize(d, fileDialogSize)
}

// setStartDir opens d in dir when dir can be listed.
func setStartDir(d *dialog.FileDialog, dir string) {
	uri := storage.NewFileURI(dir)
	if listable, err := storage.ListerForURI(uri); err == nil {
		d.SetLocation(listable)
	}
}

func showFileDialogWithResize(d *dialog.FileDialog, size fyne.Size) {
	d.Resize(size)
	d.Show()
}
