package api

import (
	"image/jpeg"
	"image/png"
	"net/http"
)

type MediaResponseType string

const (
	JPEG MediaResponseType = "jpeg"
	PNG  MediaResponseType = "png"
)

// @Summary	fetch the last rendered chart frame
// @Router		/api/frame [get]
// @Router		/api/frame/{format} [get]
// @Tags		media
// @Param		format	path	MediaResponseType	false	"The image type to return, png by default"
// @Success	200
// @Failure	400	{string}	string	"The requested image format is not supported"
// @Failure	424	{string}	string	"No frame has been rendered yet"
// @Produce	png
// @Produce	jpeg
func (a *Api) getFrame(w http.ResponseWriter, req *http.Request) {
	format := MediaResponseType(req.PathValue("format"))
	if format == "" {
		format = PNG
	}
	if format != PNG && format != JPEG {
		http.Error(w, "Unsupported format", http.StatusBadRequest)
		return
	}

	frame := a.mixer.Frame()
	if frame == nil {
		http.Error(w, "No frame returned", http.StatusFailedDependency)
		return
	}

	switch format {
	case JPEG:
		w.Header().Set("Content-Type", "image/jpeg")
		err := jpeg.Encode(w, frame, &jpeg.Options{Quality: 80})
		if err != nil {
			http.Error(w, "Could not jpeg encode this frame", http.StatusInternalServerError)
		}
	case PNG:
		w.Header().Set("Content-Type", "image/png")
		err := png.Encode(w, frame)
		if err != nil {
			http.Error(w, "Could not png encode this frame", http.StatusInternalServerError)
		}
	}
}
