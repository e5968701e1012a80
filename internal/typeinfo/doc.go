// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package typeinfo contains code relating to Go types and their processing in
sqlbuild. As much as possible, reflection code is limited to this package. It
contains the logic for reading the elements of array values passed by the
user.
*/
package typeinfo
