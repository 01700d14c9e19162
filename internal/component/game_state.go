package component

// ImageStage — стадия раскрытия изображения.
type ImageStage int

const (
	StageIntact ImageStage = iota
	StageCracking
	StagePixelating
	StageFragmented
	StageDestroyed
)

func (s ImageStage) String() string {
	switch s {
	case StageIntact:
		return "intact"
	case StageCracking:
		return "cracking"
	case StagePixelating:
		return "pixelating"
	case StageFragmented:
		return "fragmented"
	case StageDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Mode — режим страницы: просмотр или стрельба.
type Mode int

const (
	BrowseMode Mode = iota
	ShootingMode
)
