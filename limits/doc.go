// Package limits parses the asterisk-sectioned lookup-table wire format
// referenced by spec.md §6 (EXTERNAL INTERFACES): plain-text files with a
// mineral/peat soil header and four site sub-sections, each holding a
// (height-bin x species) matrix. It also implements the area-by-degree-
// days selection rule and the Vatg/Vatkg peat-tag normalization, and
// supplies a concrete treatment.LowerLimitSource for basal-area-driven
// thinning.
package limits
