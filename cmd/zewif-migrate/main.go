// Copyright (c) 2019-2020 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package main

import "github.com/zingolabs/zewif-migrate/cmd"

func main() {
	cmd.Execute()
}
