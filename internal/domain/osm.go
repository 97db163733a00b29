package domain

// OSMNode - узел из ответа Overpass
type OSMNode struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// OSMWay - линия из ответа Overpass; NodeIDs в порядке обхода
type OSMWay struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

// OSMData - сырой граф элементов для одного bbox
type OSMData struct {
	Nodes map[int64]*OSMNode
	Ways  []*OSMWay
}

// NewOSMData создаёт пустой граф
func NewOSMData() *OSMData {
	return &OSMData{Nodes: make(map[int64]*OSMNode)}
}
