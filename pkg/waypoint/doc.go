// Package waypoint fires callbacks when a page element crosses a scroll
// boundary.
//
// A Binding ties one element to a scroll.Source. On every scroll
// notification its Detector compares the source's offset against the
// element's threshold on each tracked axis and, on a strict crossing,
// calls the configured enter/exit/both callbacks and toggles an optional
// class on the element.
//
// Thresholds come from the element's layout position plus an optional
// offset. Until the first crossing the position is remeasured on every
// event, so content still loading above the element does not leave a
// stale trigger point; after that it is cached unless UpdateOffset is set.
package waypoint
