package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
)

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// GET /api/usuarios
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "usuario", "email", "role", "created_at"). // Select only public fields
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los usuarios"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// UpdateUserRole promotes or demotes a user between admin and cliente.
// PUT /api/usuarios/:id/rol
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var input UpdateRoleInput
		if err := c.ShouldBindJSON(&input); err != nil || !models.ValidRole(input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rol inválido"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el usuario"})
			}
			return
		}

		if err := db.Model(&user).Update("role", input.Role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar el rol"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mensaje":    "Rol actualizado exitosamente",
			"usuario_id": id,
			"nuevo_rol":  input.Role,
		})
	}
}

// DeleteUser removes an account. The caller may identify itself through the
// X-Admin-User header; deleting that same account is refused.
// DELETE /api/usuarios/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el usuario"})
			}
			return
		}

		if caller := c.GetHeader("X-Admin-User"); caller != "" && caller == user.Usuario {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No puedes eliminar tu propia cuenta"})
			return
		}

		result := db.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el usuario"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el usuario"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mensaje":           "Usuario eliminado exitosamente",
			"usuario_eliminado": user.Usuario,
		})
	}
}
