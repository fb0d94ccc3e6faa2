package editor

// Controller routes toolbar actions to the selected element. Every method
// reports whether an element was selected; without a selection nothing
// happens.
type Controller struct {
	doc *Document
}

// NewController returns a controller over doc.
func NewController(doc *Document) *Controller {
	return &Controller{doc: doc}
}

// BringForward moves the selected element one step up in paint order.
func (c *Controller) BringForward() bool {
	return c.withSelection(c.doc.ReorderForward)
}

// SendBackward moves the selected element one step down in paint order.
func (c *Controller) SendBackward() bool {
	return c.withSelection(c.doc.ReorderBackward)
}

// Delete removes the selected element, which also clears the selection.
func (c *Controller) Delete() bool {
	return c.withSelection(c.doc.Remove)
}

// EditText replaces the selected element's text.
func (c *Controller) EditText(text string) bool {
	return c.withSelection(func(id string) { c.doc.UpdateText(id, text) })
}

// EditStyle merges patch into the selected element's style.
func (c *Controller) EditStyle(patch StylePatch) bool {
	return c.withSelection(func(id string) { c.doc.ChangeStyle(id, patch) })
}

// EditSize sets the selected element's width and height.
func (c *Controller) EditSize(w, h float64) bool {
	return c.withSelection(func(id string) { c.doc.SetSize(id, w, h) })
}

// EditSource sets the selected image element's URL.
func (c *Controller) EditSource(src string) bool {
	return c.withSelection(func(id string) { c.doc.SetSource(id, src) })
}

func (c *Controller) withSelection(fn func(id string)) bool {
	id, ok := c.doc.Selected()
	if !ok {
		return false
	}
	fn(id)
	return true
}
